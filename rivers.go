package mapgen

import "sort"

// RiverSegment is a polyline of cells with a flow magnitude, spec.md §3.
type RiverSegment struct {
	Cells   [][2]int
	Flow    float64
	Estuary bool
}

const riverThresholdBase = 8.0

// generateRivers implements spec.md §4.6: D8 steepest-descent flow direction,
// Floyd/O'Callaghan descending-elevation flow accumulation weighted by
// humidity, river-cell thresholding, and polyline linking with estuary
// detection where a river meets Ocean within one cell.
func generateRivers(h *Grid[float32], hum *Grid[float32], water *Grid[WaterTag], seaLevel, humidityMean float64) (*Grid[float64], []RiverSegment) {
	w, hgt := h.W, h.H
	n := w * hgt

	downstream := make([]int, n)
	for i := range downstream {
		downstream[i] = -1
	}
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			if water.Data[idx] != Land {
				continue
			}
			best := -1
			bestH := float64(h.Data[idx])
			for _, nb := range h.Neighbors8(x, y) {
				nh := float64(h.At(nb[0], nb[1]))
				if nh < bestH {
					bestH = nh
					best = h.Idx(nb[0], nb[1])
				}
			}
			downstream[idx] = best // -1 means sink (local minimum / lake)
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return h.Data[order[i]] > h.Data[order[j]] })

	flow := NewGrid[float64](w, hgt)
	for _, idx := range order {
		flow.Data[idx] += 1.0
	}
	for _, idx := range order {
		if water.Data[idx] != Land {
			continue
		}
		target := downstream[idx]
		if target < 0 {
			continue
		}
		weighted := flow.Data[idx] * (1 + float64(hum.Data[idx]))
		flow.Data[target] += weighted
	}

	threshold := riverThresholdBase * (0.5 + humidityMean)
	isRiver := make([]bool, n)
	for i, v := range flow.Data {
		if water.Data[i] == Land && v > threshold {
			isRiver[i] = true
		}
	}

	var segments []RiverSegment
	visited := make([]bool, n)
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			if !isRiver[idx] || visited[idx] {
				continue
			}
			// Start a segment only at a head: no upstream river neighbor
			// flowing into this cell via downstream[]. Walk downhill.
			isHead := true
			for _, nb := range h.Neighbors8(x, y) {
				nidx := h.Idx(nb[0], nb[1])
				if isRiver[nidx] && downstream[nidx] == idx {
					isHead = false
					break
				}
			}
			if !isHead {
				continue
			}
			seg := walkRiverSegment(h, water, downstream, isRiver, visited, idx)
			if len(seg.Cells) > 0 {
				// Flow magnitude: the largest accumulated flow on the segment's land cells.
				for _, c := range seg.Cells {
					cidx := h.Idx(c[0], c[1])
					if water.Data[cidx] == Land && flow.Data[cidx] > seg.Flow {
						seg.Flow = flow.Data[cidx]
					}
				}
				segments = append(segments, seg)
			}
		}
	}

	return flow, segments
}

func walkRiverSegment(h *Grid[float32], water *Grid[WaterTag], downstream []int, isRiver, visited []bool, start int) RiverSegment {
	var seg RiverSegment
	cur := start
	for cur >= 0 && !visited[cur] {
		visited[cur] = true
		x, y := h.XY(cur)
		seg.Cells = append(seg.Cells, [2]int{x, y})
		next := downstream[cur]
		if next < 0 {
			break
		}
		if water.Data[next] == Ocean {
			seg.Cells = append(seg.Cells, func() [2]int { nx, ny := h.XY(next); return [2]int{nx, ny} }())
			seg.Estuary = true
			break
		}
		if !isRiver[next] {
			break
		}
		cur = next
	}
	return seg
}

// tagRiverBiomes overwrites the biome of every river segment cell with
// BiomeRiver, per spec.md §4.6 "Biome of river cells becomes River".
func tagRiverBiomes(b *Grid[Biome], segments []RiverSegment) {
	for _, seg := range segments {
		for _, c := range seg.Cells {
			idx := b.Idx(c[0], c[1])
			if b.Data[idx] != BiomeOcean && b.Data[idx] != BiomeLake {
				b.Data[idx] = BiomeRiver
			}
		}
	}
}
