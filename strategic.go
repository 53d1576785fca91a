package mapgen

// StrategicPointKind is one of Port, Estuary, Pass, per spec.md §3.
type StrategicPointKind int

const (
	Port StrategicPointKind = iota
	Estuary
	Pass
)

// StrategicPoint is a (coordinates, kind, province id) record, spec.md §3.
type StrategicPoint struct {
	X, Y       int
	Kind       StrategicPointKind
	ProvinceID int
}

// findStrategicPoints implements spec.md §4.11.
func findStrategicPoints(h *Grid[float32], pixelToID *Grid[int32], provinces map[int]*Province, segments []RiverSegment, seaLevel float64) []StrategicPoint {
	var points []StrategicPoint
	points = append(points, findPorts(pixelToID, provinces)...)
	points = append(points, findEstuaries(segments, pixelToID)...)
	points = append(points, findPasses(h, pixelToID, provinces, seaLevel)...)
	return points
}

// findPorts: for each coastal land province, the border cell adjacent to the
// largest adjacent ocean province's area.
func findPorts(pixelToID *Grid[int32], provinces map[int]*Province) []StrategicPoint {
	var out []StrategicPoint
	w, h := pixelToID.W, pixelToID.H

	for _, pr := range provinces {
		if pr.Type != ProvinceContinental || !pr.Coastal {
			continue
		}
		// Find the largest adjacent ocean province.
		bestOcean, bestArea := -1, -1
		for _, nb := range pr.Neighbors {
			other := provinces[nb]
			if other != nil && other.Type == ProvinceOceanic && other.Area > bestArea {
				bestOcean, bestArea = nb, other.Area
			}
		}
		if bestOcean < 0 {
			continue
		}
		// Scan this province's border cells for one adjacent to bestOcean.
		found := false
		for y := 0; y < h && !found; y++ {
			for x := 0; x < w && !found; x++ {
				idx := pixelToID.Idx(x, y)
				if int(pixelToID.Data[idx]) != pr.ID {
					continue
				}
				for _, nb := range pixelToID.Neighbors4(x, y) {
					nidx := pixelToID.Idx(nb[0], nb[1])
					if int(pixelToID.Data[nidx]) == bestOcean {
						out = append(out, StrategicPoint{X: x, Y: y, Kind: Port, ProvinceID: pr.ID})
						found = true
						break
					}
				}
			}
		}
	}
	return out
}

// findEstuaries converts river segments already flagged Estuary into
// strategic points at their final cell, which is the Ocean cell the river
// drains into.
func findEstuaries(segments []RiverSegment, pixelToID *Grid[int32]) []StrategicPoint {
	var out []StrategicPoint
	for _, seg := range segments {
		if !seg.Estuary || len(seg.Cells) == 0 {
			continue
		}
		c := seg.Cells[len(seg.Cells)-1]
		idx := pixelToID.Idx(c[0], c[1])
		out = append(out, StrategicPoint{X: c[0], Y: c[1], Kind: Estuary, ProvinceID: int(pixelToID.Data[idx])})
	}
	return out
}

const mountainEdgeThreshold = 0.15

// findPasses scans each land-land adjacency edge for its lowest shared
// border cell, qualifying as a Pass iff that cell sits above
// sea_level+0.15 and is a 3x3 local minimum among mountain cells.
func findPasses(h *Grid[float32], pixelToID *Grid[int32], provinces map[int]*Province, seaLevel float64) []StrategicPoint {
	type edgeLow struct {
		x, y int
		elev float64
	}
	lowest := make(map[[2]int]edgeLow)

	w, hgt := h.W, h.H
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := pixelToID.Idx(x, y)
			id := int(pixelToID.Data[idx])
			if id < 0 || provinces[id] == nil || provinces[id].Type != ProvinceContinental {
				continue
			}
			for _, d := range [2][2]int{{1, 0}, {0, 1}} {
				nidx := pixelToID.Idx(x+d[0], y+d[1])
				nid := int(pixelToID.Data[nidx])
				if nid < 0 || nid == id || provinces[nid] == nil || provinces[nid].Type != ProvinceContinental {
					continue
				}
				key := orderedPair(id, nid)
				elev := float64(h.Data[idx])
				if cur, ok := lowest[key]; !ok || elev < cur.elev {
					lowest[key] = edgeLow{x: x, y: y, elev: elev}
				}
			}
		}
	}

	var out []StrategicPoint
	for key, low := range lowest {
		if low.elev <= seaLevel+mountainEdgeThreshold {
			continue
		}
		if !isLocalMinimumAmongMountains(h, low.x, low.y, seaLevel) {
			continue
		}
		idx := pixelToID.Idx(low.x, low.y)
		out = append(out, StrategicPoint{X: low.x, Y: low.y, Kind: Pass, ProvinceID: int(pixelToID.Data[idx]) })
		_ = key
	}
	return out
}

func isLocalMinimumAmongMountains(h *Grid[float32], x, y int, seaLevel float64) bool {
	cur := float64(h.At(x, y))
	if cur <= seaLevel+mountainEdgeThreshold {
		return false
	}
	for _, nb := range h.Neighbors8(x, y) {
		nh := float64(h.At(nb[0], nb[1]))
		if nh <= seaLevel+mountainEdgeThreshold {
			continue // not a mountain cell, excluded from the comparison set
		}
		if nh < cur {
			return false
		}
	}
	return true
}
