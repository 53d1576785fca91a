package mapgen

import "math"

// erosionSeedXor is the subseed XOR mask spec.md §4.2 specifies for erosion.
const erosionSeedXor = 0x4E020519

const (
	thermalIterations = 20
	talusAngle        = 0.01
	talusTransfer     = 0.5

	hydraulicMaxSteps = 64
	minSlope          = 0.01
	capacityFactor    = 4.0
	depositFraction   = 0.3
	erosionFactor     = 0.3
)

// applyErosion runs thermal then hydraulic erosion in place, per spec.md §4.2.
func applyErosion(g *Grid[float32], p *WorldParams, seaLevel float64) {
	applyThermalErosion(g)
	applyHydraulicErosion(g, p, seaLevel)
}

// applyThermalErosion implements the talus-angle diffusion pass: each
// iteration, for every cell, transfer a fraction of the excess height
// difference with each of its 4 neighbors from higher to lower. It takes no
// sea level, so water cells are eroded the same as land cells.
func applyThermalErosion(g *Grid[float32]) {
	w, h := g.W, g.H
	for iter := 0; iter < thermalIterations; iter++ {
		delta := make([]float32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cur := float64(g.At(x, y))
				for _, nb := range g.Neighbors4(x, y) {
					other := float64(g.At(nb[0], nb[1]))
					diff := cur - other
					if diff > talusAngle {
						move := (diff - talusAngle) * talusTransfer * 0.25
						delta[g.Idx(x, y)] -= float32(move)
						delta[g.Idx(nb[0], nb[1])] += float32(move)
					}
				}
			}
		}
		for i := range g.Data {
			g.Data[i] += delta[i]
		}
	}
}

// applyHydraulicErosion simulates P droplets walking downhill, eroding and
// depositing sediment according to a capacity model, per spec.md §4.2.
// Each droplet's seed is derived deterministically from (stage_seed, index)
// so that the result is independent of worker scheduling; droplets are run
// sequentially here because each droplet mutates shared grid state across
// its whole walk (the "per-droplet contributions are summed" relaxation in
// spec.md §5 applies to the deposition step, not the walk itself).
func applyHydraulicErosion(g *Grid[float32], p *WorldParams, seaLevel float64) {
	stageSeed := subSeed(p.Seed, 2) ^ erosionSeedXor
	numDroplets := (p.Width * p.Height) / 8

	for i := 0; i < numDroplets; i++ {
		h := particleHash(stageSeed, i)
		x := hashRange(h, g.W)
		y := hashRange(splitmix64(h), g.H)
		if float64(g.At(x, y)) <= seaLevel {
			continue
		}
		simulateDroplet(g, float64(x), float64(y), seaLevel)
	}
}

func simulateDroplet(g *Grid[float32], px, py, seaLevel float64) {
	sediment := 0.0
	velocity := 0.0
	water := 1.0

	for step := 0; step < hydraulicMaxSteps; step++ {
		x, y := int(math.Floor(px)), int(math.Floor(py))
		h0 := float64(g.At(x, y))
		if h0 <= seaLevel {
			// Drop remaining sediment on entering water.
			g.Set(x, y, float32(float64(g.At(x, y))+sediment))
			return
		}

		gx, gy := gradient(g, px, py)
		if gx == 0 && gy == 0 {
			g.Set(x, y, float32(float64(g.At(x, y))+sediment))
			return
		}
		// Step downhill along the negative gradient.
		norm := math.Hypot(gx, gy)
		dx, dy := -gx/norm, -gy/norm

		nx, ny := px+dx, py+dy
		nxi, nyi := int(math.Floor(nx)), int(math.Floor(ny))
		h1 := float64(g.At(nxi, nyi))
		deltaH := h1 - h0

		capacity := math.Max(-deltaH, minSlope) * velocity * water * capacityFactor
		if deltaH > 0 || sediment > capacity {
			// Deposit.
			deposit := sediment * depositFraction
			if deltaH > 0 {
				deposit = math.Min(sediment, deltaH)
			}
			g.Set(x, y, float32(float64(g.At(x, y))+deposit))
			sediment -= deposit
		} else {
			// Erode.
			erode := math.Min((capacity-sediment)*erosionFactor, h0*0.5)
			g.Set(x, y, float32(h0-erode))
			sediment += erode
		}

		velocity = math.Sqrt(math.Max(0, velocity*velocity+deltaH*-9.8))
		water *= 0.98
		px, py = nx, ny
		if water < 0.01 {
			g.Set(nxi, nyi, float32(float64(g.At(nxi, nyi))+sediment))
			return
		}
	}
}

// gradient returns the bilinearly-sampled height gradient at the continuous
// position (px,py), per spec.md §4.2's "downhill via gradient via bilinear
// sampling": weighted forward differences across the four cells
// surrounding (px,py), not just the 4-neighborhood of its floored cell.
func gradient(g *Grid[float32], px, py float64) (gx, gy float64) {
	x, y := int(math.Floor(px)), int(math.Floor(py))
	u, v := px-float64(x), py-float64(y)

	nw := float64(g.At(x, y))
	ne := float64(g.At(x+1, y))
	sw := float64(g.At(x, y+1))
	se := float64(g.At(x+1, y+1))

	gx = (ne-nw)*(1-v) + (se-sw)*v
	gy = (sw-nw)*(1-u) + (se-ne)*u
	return gx, gy
}
