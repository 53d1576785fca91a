package mapgen

import "math"

const lapseRate = 0.6 // k_e in spec.md §4.4

// generateTemperature implements spec.md §4.4's temperature model:
// latitude-banded base temperature with polar amplification, an elevation
// lapse rate above sea level, and a global offset, clamped to [0,1].
func generateTemperature(h *Grid[float32], p *WorldParams, seaLevel float64) *Grid[float32] {
	t := NewGrid[float32](h.W, h.H)
	exp := p.Climate.ClimateLatitudeExponent
	amp := p.Climate.PolarAmplification
	offset := p.Climate.GlobalTemperatureOffset

	for y := 0; y < h.H; y++ {
		latFrac := float64(y)/float64(h.H) - 0.5
		tLat := math.Pow(math.Cos(math.Pi*latFrac), exp)
		if tLat < 0 {
			tLat = 0
		}
		tLat = math.Pow(tLat, amp)

		for x := 0; x < h.W; x++ {
			elev := float64(h.At(x, y))
			tElev := -lapseRate * math.Max(0, elev-seaLevel)
			v := clamp01(tLat + tElev + offset)
			t.Set(x, y, float32(v))
		}
	}
	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
