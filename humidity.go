package mapgen

import "math"

const (
	humiditySweeps = 64
	kOrog          = 0.08
	kEvap          = 0.05
)

// generateHumidity implements spec.md §4.4's humidity model: initialize 0 on
// land / 1 on water (ocean and lake), then iterate a semi-Lagrangian upwind advection along
// wind, subtracting orographic precipitation on upwind slopes and adding
// evaporation from water, clamped to [0,1] each sweep. Double-buffered so the
// result does not depend on traversal order (spec.md §5).
func generateHumidity(h *Grid[float32], water *Grid[WaterTag], wind *Wind, p *WorldParams, seaLevel float64) *Grid[float32] {
	w, hgt := h.W, h.H
	cur := NewGrid[float32](w, hgt)
	for i, tag := range water.Data {
		if tag != Land {
			cur.Data[i] = 1.0
		}
	}

	next := NewGrid[float32](w, hgt)
	for sweep := 0; sweep < humiditySweeps; sweep++ {
		for y := 0; y < hgt; y++ {
			for x := 0; x < w; x++ {
				v := wind.At(x, y)
				// Upwind source cell: step backward along the wind vector by
				// one cell (semi-Lagrangian upwind advection).
				sx := x - sign(v.X)
				sy := y - sign(v.Y)
				advected := float64(cur.At(sx, sy))

				// Orographic precipitation: lose moisture climbing a slope
				// in the downwind direction.
				dx, dy := sign(v.X), sign(v.Y)
				dHdWind := float64(h.At(x+dx, y+dy)) - float64(h.At(x, y))
				precip := kOrog * math.Max(0, dHdWind)

				evap := 0.0
				if water.At(x, y) != Land {
					evap = kEvap * (1 - advected)
				}

				val := clamp01(advected - precip + evap)
				next.Set(x, y, float32(val))
			}
		}
		cur, next = next, cur
	}

	for i, tag := range water.Data {
		if tag != Land {
			cur.Data[i] = 1.0
		}
	}

	offset := p.Climate.GlobalHumidityOffset
	if offset != 0 {
		for i, v := range cur.Data {
			cur.Data[i] = float32(clamp01(float64(v) + offset))
		}
	}
	return cur
}

func sign(v float64) int {
	switch {
	case v > 0.001:
		return 1
	case v < -0.001:
		return -1
	default:
		return 0
	}
}
