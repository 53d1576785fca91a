package mapgen

import (
	"math"
	"testing"
)

func TestGenerateHeightmapDeterministic(t *testing.T) {
	p := NewDefaultParams(7, EarthLike)
	p.Width, p.Height = 24, 16

	a, sa := generateHeightmap(p)
	b, sb := generateHeightmap(p)
	if sa != sb {
		t.Fatalf("sea level not deterministic: %v vs %v", sa, sb)
	}
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("heightmap not deterministic at index %d", i)
		}
	}
}

func TestGenerateHeightmapValuesInUnitRange(t *testing.T) {
	p := NewDefaultParams(3, Archipelago)
	p.Width, p.Height = 20, 14

	g, _ := generateHeightmap(p)
	for i, v := range g.Data {
		if v < 0 || v > 1 {
			t.Fatalf("heightmap value out of [0,1] at index %d: %v", i, v)
		}
	}
}

func TestGenerateHeightmapSeamContinuity(t *testing.T) {
	// The grid wraps in X, so column W-1 and column 0 are neighbors. With
	// a cylindrical noise embedding there should be no discontinuity jump
	// across that seam larger than what's seen between any two adjacent
	// interior columns.
	p := NewDefaultParams(11, EarthLike)
	p.Width, p.Height = 32, 16
	g, _ := generateHeightmap(p)

	maxInteriorDelta := 0.0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W-1; x++ {
			d := math.Abs(float64(g.At(x, y)) - float64(g.At(x+1, y)))
			if d > maxInteriorDelta {
				maxInteriorDelta = d
			}
		}
	}
	seamDelta := 0.0
	for y := 0; y < g.H; y++ {
		d := math.Abs(float64(g.At(g.W-1, y)) - float64(g.At(0, y)))
		if d > seamDelta {
			seamDelta = d
		}
	}
	if seamDelta > maxInteriorDelta*3+0.05 {
		t.Errorf("seam delta %v much larger than interior delta %v, embedding may not wrap smoothly", seamDelta, maxInteriorDelta)
	}
}

func TestSearchSeaLevelHitsTargetFraction(t *testing.T) {
	g := NewGrid[float32](50, 50)
	for i := range g.Data {
		x, y := g.XY(i)
		g.Data[i] = float32(x*50+y) / float32(50*50-1)
	}
	target := 0.3
	level := searchSeaLevel(g, target)

	above := 0
	for _, v := range g.Data {
		if float64(v) > level {
			above++
		}
	}
	got := float64(above) / float64(len(g.Data))
	if math.Abs(got-target) > 0.01 {
		t.Errorf("land fraction %v too far from target %v at sea level %v", got, target, level)
	}
}

func TestApplyMountainCompressionLeavesBelowSeaLevelUnchanged(t *testing.T) {
	g := NewGrid[float32](3, 1)
	g.Data[0] = 0.2
	g.Data[1] = 0.8
	g.Data[2] = 0.5
	applyMountainCompression(g, 0.5, 0.5)
	if g.Data[0] != 0.2 {
		t.Errorf("below-sea-level cell should be untouched, got %v", g.Data[0])
	}
	if g.Data[1] <= 0.8 {
		t.Errorf("above-sea-level cell should be pushed upward, got %v", g.Data[1])
	}
}
