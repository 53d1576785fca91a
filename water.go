package mapgen

// classifyWater implements spec.md §4.3: BFS from every edge-row (y=0,
// y=H-1) water cell, 4-neighborhood with X-wrap. Reachable water is Ocean;
// unreached water is Lake; everything else is Land.
func classifyWater(h *Grid[float32], seaLevel float64) (*Grid[WaterTag], error) {
	w, hgt := h.W, h.H
	water := NewGrid[WaterTag](w, hgt)
	for i, v := range h.Data {
		if float64(v) <= seaLevel {
			water.Data[i] = Lake // provisional; edge-BFS promotes reachable cells to Ocean
		} else {
			water.Data[i] = Land
		}
	}

	visited := make([]bool, w*hgt)
	queue := make([][2]int, 0, w*2)
	for x := 0; x < w; x++ {
		for _, y := range [2]int{0, hgt - 1} {
			idx := water.Idx(x, y)
			if water.Data[idx] == Lake && !visited[idx] {
				visited[idx] = true
				queue = append(queue, [2]int{x, y})
			}
		}
	}

	if len(queue) == 0 {
		return nil, &EmptyOceansError{}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cx, cy := cur[0], cur[1]
		water.Set(cx, cy, Ocean)
		for _, nb := range water.Neighbors4(cx, cy) {
			idx := water.Idx(nb[0], nb[1])
			if !visited[idx] && water.Data[idx] == Lake {
				visited[idx] = true
				queue = append(queue, nb)
			}
		}
	}

	hasLand := false
	for _, v := range water.Data {
		if v == Land {
			hasLand = true
			break
		}
	}
	if !hasLand {
		return nil, &EmptyLandError{}
	}

	return water, nil
}
