package mapgen

import (
	"math"
	"sort"

	"github.com/san-smith/mapgen/noise"
	"github.com/san-smith/mapgen/various"
)

// heightmapStageSeedOffset is XORed into the root seed's stage subseed to
// derive the noise generator's seed, keeping the heightmap stream
// independent from the island-blob stream derived below.
const heightmapStageSeedOffset = 0x1

// generateHeightmap implements spec.md §4.1: cylindrical fBm noise, world-type
// shaping, elevation power/compression, box blur, and sea-level search to hit
// the world type's target land fraction.
func generateHeightmap(p *WorldParams) (h *Grid[float32], seaLevel float64) {
	return generateHeightmapWithWorkers(p)
}

// generateHeightmapWithWorkers is generateHeightmap with an explicit worker
// count for the per-cell fill loop, letting tests check that chunking the
// fill across a different number of goroutines never changes the result
// (spec.md §8's determinism-under-parallelism property).
func generateHeightmapWithWorkers(p *WorldParams, workers ...int) (h *Grid[float32], seaLevel float64) {
	stageSeed := subSeed(p.Seed, 1)
	n := noise.NewNoiseLacunarity(fbmOctaves(p.Type), 0.5, 2.0, int64(stageSeed^heightmapStageSeedOffset))

	g := NewGrid[float32](p.Width, p.Height)
	// R is chosen so one noise sample period covers roughly W/8 cells.
	R := float64(p.Width) / (2 * math.Pi) / 4

	var islandNoise *noise.Noise
	if p.Type == Archipelago {
		islandNoise = noise.NewNoiseLacunarity(3, 0.5, 2.0, int64(stageSeed+2_000_000))
	}

	various.KickOffChunkWorkers(p.Width*p.Height, func(start, end int) {
		for idx := start; idx < end; idx++ {
			x, y := g.XY(idx)
			u := 2 * math.Pi * float64(x) / float64(p.Width)
			lat := math.Pi * (float64(y)/float64(p.Height) - 0.5)
			px := R * math.Cos(lat) * math.Cos(u)
			py := R * math.Cos(lat) * math.Sin(u)
			pz := R * math.Sin(lat)

			v := n.Eval3(px, py, pz)
			v = shapeByWorldType(p.Type, v, x, y, p.Width, p.Height, islandNoise, px, py, pz, p.Islands.IslandDensity)
			g.Data[idx] = float32(v)
		}
	}, workers...)

	normalizeGrid(g)
	applyElevationPower(g, p.Terrain.ElevationPower)
	if p.Terrain.MountainCompression > 0 {
		applyMountainCompression(g, p.Terrain.MountainCompression, defaultSeaLevel)
	}
	if p.Terrain.SmoothRadius > 0 {
		boxBlur(g, p.Terrain.SmoothRadius)
	}

	seaLevel = searchSeaLevel(g, p.Type.TargetLandFraction())
	return g, seaLevel
}

// fbmOctaves returns the per-world-type octave count, staying within
// spec.md §4.1's mandatory 5-7 octave range: broad continental shapes lean
// toward the low end since large-scale shaping carries more of the
// silhouette, while archipelagos and everything else lean toward the high
// end for extra small-scale detail.
func fbmOctaves(t WorldType) int {
	switch t {
	case Supercontinent, Mediterranean:
		return 5
	case Archipelago:
		return 7
	default:
		return 6
	}
}

const defaultSeaLevel = 0.5

// shapeByWorldType dispatches world-type shaping on the raw noise value, per
// the table in spec.md §4.1. Dispatch is a single switch on the enum tag,
// not subclassing, per spec.md §9 "Polymorphism".
func shapeByWorldType(t WorldType, v float64, x, y, w, h int, islandNoise *noise.Noise, px, py, pz, islandDensity float64) float64 {
	latFactor := math.Abs(float64(y)/float64(h)-0.5) * 2 // 0 at equator, 1 at poles

	switch t {
	case EarthLike:
		return v - 0.15*latFactor
	case Supercontinent:
		// Broad radial hump centered on the equator.
		hump := 1 - latFactor*latFactor
		return v*0.6 + hump*0.4
	case Archipelago:
		centered := v - 0.5
		if islandNoise != nil {
			blob := islandNoise.Eval3(px, py, pz)
			centered += (blob - 0.5) * islandDensity
		}
		return centered
	case Mediterranean, DesertMediterranean:
		// Annulus mask around the grid's lon/lat center carves an inland sea.
		cx, cy := float64(w)/2, float64(h)/2
		dx := math.Min(math.Abs(float64(x)-cx), float64(w)-math.Abs(float64(x)-cx))
		dy := float64(y) - cy
		d := math.Sqrt(dx*dx+dy*dy) / (float64(w) / 6)
		annulus := math.Abs(d - 1)
		return v*0.7 + annulus*0.3
	case IceAgeEarth:
		return v - 0.15*latFactor
	default:
		return v
	}
}

func normalizeGrid(g *Grid[float32]) {
	min32, max32 := g.Data[0], g.Data[0]
	for _, v := range g.Data {
		if v < min32 {
			min32 = v
		}
		if v > max32 {
			max32 = v
		}
	}
	span := max32 - min32
	if span == 0 {
		span = 1
	}
	for i, v := range g.Data {
		g.Data[i] = (v - min32) / span
	}
}

func applyElevationPower(g *Grid[float32], power float64) {
	for i, v := range g.Data {
		g.Data[i] = float32(math.Pow(float64(v), power))
	}
}

// applyMountainCompression pushes values above sea level toward 1.0 via
// h <- mix(h, 1-(1-h)^k, compression), per spec.md §4.1.
func applyMountainCompression(g *Grid[float32], compression, seaLevel float64) {
	const k = 2.5
	for i, v := range g.Data {
		h := float64(v)
		if h <= seaLevel {
			continue
		}
		compressed := 1 - math.Pow(1-h, k)
		g.Data[i] = float32(h*(1-compression) + compressed*compression)
	}
}

// boxBlur applies a separable box blur of the given radius, X-wrap aware,
// Y-clamped, matching original_source/src/heightmap.rs's smooth_heightmap.
func boxBlur(g *Grid[float32], radius int) {
	w, h := g.W, g.H
	tmp := make([]float32, w*h)
	// Horizontal pass (wraps).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			n := 0
			for dx := -radius; dx <= radius; dx++ {
				sum += g.At(x+dx, y)
				n++
			}
			tmp[y*w+x] = sum / float32(n)
		}
	}
	// Vertical pass (clamps).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			n := 0
			for dy := -radius; dy <= radius; dy++ {
				cy := y + dy
				if cy < 0 {
					cy = 0
				}
				if cy >= h {
					cy = h - 1
				}
				sum += tmp[cy*w+x]
				n++
			}
			g.Data[y*w+x] = sum / float32(n)
		}
	}
}

// searchSeaLevel binary-searches sea_level so that the land fraction matches
// target within 0.5%, per spec.md §4.1's "Target land fraction is enforced"
// requirement.
func searchSeaLevel(g *Grid[float32], target float64) float64 {
	sorted := make([]float32, len(g.Data))
	copy(sorted, g.Data)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	landFractionAt := func(level float64) float64 {
		// Binary search for the first index with value > level.
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			if float64(sorted[mid]) <= level {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return float64(n-lo) / float64(n)
	}

	lo, hi := 0.0, 1.0
	best := 0.5
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		lf := landFractionAt(mid)
		best = mid
		if math.Abs(lf-target) < 0.001 {
			break
		}
		// Land fraction decreases as sea level increases.
		if lf > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}
