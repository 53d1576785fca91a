package mapgen

// computeBorderWeights implements spec.md §4.9's single pixel-grid pass:
// for each pair of 4-neighbors (X-wrap) with distinct ids, record an
// undirected edge weighted by shared border-pixel count. Keys are
// normalized (min,max) pairs.
func computeBorderWeights(pixelToID *Grid[int32], provinces map[int]*Province) map[[2]int]int {
	edges := make(map[[2]int]int)
	w, h := pixelToID.W, pixelToID.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := pixelToID.Idx(x, y)
			id := int(pixelToID.Data[idx])
			if id < 0 {
				continue
			}
			// Only check +X and +Y neighbors to count each border pixel pair once.
			for _, d := range [2][2]int{{1, 0}, {0, 1}} {
				nidx := pixelToID.Idx(x+d[0], y+d[1])
				nid := int(pixelToID.Data[nidx])
				if nid < 0 || nid == id {
					continue
				}
				key := orderedPair(id, nid)
				edges[key]++
			}
		}
	}
	return edges
}

func orderedPair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// buildAdjacencyGraph fills Province.Neighbors and Province.Coastal from the
// border-weight map, per spec.md §4.9. Coastal = has an edge to a
// non-continental (water) province.
func buildAdjacencyGraph(pixelToID *Grid[int32], provinces map[int]*Province) {
	edges := computeBorderWeights(pixelToID, provinces)
	neighborSet := make(map[int]map[int]bool)
	for pair := range edges {
		a, b := pair[0], pair[1]
		if neighborSet[a] == nil {
			neighborSet[a] = make(map[int]bool)
		}
		if neighborSet[b] == nil {
			neighborSet[b] = make(map[int]bool)
		}
		neighborSet[a][b] = true
		neighborSet[b][a] = true
	}

	for id, pr := range provinces {
		var nbs []int
		for nb := range neighborSet[id] {
			nbs = append(nbs, nb)
		}
		sortInts(nbs)
		pr.Neighbors = nbs

		pr.Coastal = false
		if pr.Type == ProvinceContinental {
			for _, nb := range nbs {
				if other := provinces[nb]; other != nil && other.Type != ProvinceContinental {
					pr.Coastal = true
					break
				}
			}
		}
	}
}
