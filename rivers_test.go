package mapgen

import "testing"

func slopedLandGrid(w, h int) (*Grid[float32], *Grid[WaterTag]) {
	hm := NewGrid[float32](w, h)
	water := NewGrid[WaterTag](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Descends toward the bottom row, which is ocean -- a simple
			// single-direction drainage basin.
			elev := 1.0 - float64(y)/float64(h)
			hm.Set(x, y, float32(elev))
			if y == h-1 {
				water.Set(x, y, Ocean)
			} else {
				water.Set(x, y, Land)
			}
		}
	}
	return hm, water
}

func TestGenerateRiversFlowIsNonNegative(t *testing.T) {
	w, h := 10, 10
	hm, water := slopedLandGrid(w, h)
	hum := NewGrid[float32](w, h)
	for i := range hum.Data {
		hum.Data[i] = 0.6
	}
	flow, _ := generateRivers(hm, hum, water, 0.0, 0.6)
	for _, v := range flow.Data {
		if v < 0 {
			t.Fatalf("flow accumulation must be non-negative, got %v", v)
		}
	}
}

func TestGenerateRiversSegmentsReachWater(t *testing.T) {
	w, h := 12, 12
	hm, water := slopedLandGrid(w, h)
	hum := NewGrid[float32](w, h)
	for i := range hum.Data {
		hum.Data[i] = 0.9
	}
	_, segments := generateRivers(hm, hum, water, 0.0, 0.9)
	for _, seg := range segments {
		if len(seg.Cells) == 0 {
			t.Fatalf("river segment has no cells")
		}
		lastX, lastY := seg.Cells[len(seg.Cells)-1][0], seg.Cells[len(seg.Cells)-1][1]
		_ = lastX
		if seg.Estuary {
			if water.At(lastX, lastY) == Land {
				t.Errorf("estuary-flagged segment should end on a water cell, last cell is Land")
			}
		}
	}
}

func TestWalkRiverSegmentDetectsEstuary(t *testing.T) {
	w, h := 5, 5
	hm, water := slopedLandGrid(w, h)
	downstream := make([]int, w*h)
	isRiver := make([]bool, w*h)
	visited := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := hm.Idx(x, y)
			isRiver[idx] = true
			if y < h-1 {
				downstream[idx] = hm.Idx(x, y+1)
			} else {
				downstream[idx] = idx
			}
		}
	}
	start := hm.Idx(2, 0)
	seg := walkRiverSegment(hm, water, downstream, isRiver, visited, start)
	if !seg.Estuary {
		t.Errorf("expected segment draining into ocean to be flagged Estuary")
	}
}

func TestTagRiverBiomesOverridesLandTags(t *testing.T) {
	w, h := 4, 4
	b := NewGrid[Biome](w, h)
	for i := range b.Data {
		b.Data[i] = BiomeGrassland
	}
	seg := RiverSegment{Cells: [][2]int{{1, 1}, {1, 2}}, Flow: 5}
	tagRiverBiomes(b, []RiverSegment{seg})
	if b.At(1, 1) != BiomeRiver || b.At(1, 2) != BiomeRiver {
		t.Errorf("river cells should be tagged BiomeRiver")
	}
	if b.At(0, 0) != BiomeGrassland {
		t.Errorf("non-river cell should be untouched")
	}
}
