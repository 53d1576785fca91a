package mapgen

// mergeSmallProvinces implements spec.md §4.8: any province smaller than
// total_area/N/4 is merged into its largest same-class neighbor by shared
// border length (ties by lower neighbor id); repeated to a fixpoint, then
// ids are reassigned contiguously. Border lengths come from
// computeBorderWeights' edge weights (computed fresh before each pass, since merges change them).
func mergeSmallProvinces(pixelToID *Grid[int32], provinces map[int]*Province, totalArea, n int) {
	minArea := totalArea / n / 4
	if minArea < 1 {
		minArea = 1
	}

	for {
		edges := computeBorderWeights(pixelToID, provinces)
		mergedAny := false

		var smallIDs []int
		for id, pr := range provinces {
			if pr.Area > 0 && pr.Area < minArea {
				smallIDs = append(smallIDs, id)
			}
		}
		sortInts(smallIDs)

		for _, id := range smallIDs {
			pr := provinces[id]
			if pr == nil || pr.Area == 0 {
				continue
			}
			target := bestMergeTarget(id, pr.Type, edges, provinces)
			if target < 0 {
				continue
			}
			mergeProvinceInto(pixelToID, provinces, id, target)
			mergedAny = true
		}
		if !mergedAny {
			break
		}
	}

	reassignContiguousIDs(pixelToID, provinces)
}

func bestMergeTarget(id int, t ProvinceType, edges map[[2]int]int, provinces map[int]*Province) int {
	best, bestW := -1, -1
	for pair, weight := range edges {
		var other int
		switch {
		case pair[0] == id:
			other = pair[1]
		case pair[1] == id:
			other = pair[0]
		default:
			continue
		}
		op := provinces[other]
		if op == nil || op.Type != t || op.Area == 0 {
			continue
		}
		if best < 0 || weight > bestW || (weight == bestW && other < best) {
			best, bestW = other, weight
		}
	}
	return best
}

func mergeProvinceInto(pixelToID *Grid[int32], provinces map[int]*Province, from, into int) {
	srcID, dstID := int32(from), int32(into)
	for i, id := range pixelToID.Data {
		if id == srcID {
			pixelToID.Data[i] = dstID
		}
	}
	src, dst := provinces[from], provinces[into]
	if src == nil || dst == nil {
		return
	}
	totalArea := src.Area + dst.Area
	dst.CenterX = (dst.CenterX*float64(dst.Area) + src.CenterX*float64(src.Area)) / float64(totalArea)
	dst.CenterY = (dst.CenterY*float64(dst.Area) + src.CenterY*float64(src.Area)) / float64(totalArea)
	for bm, frac := range src.BiomeHist {
		dst.BiomeHist[bm] = dst.BiomeHist[bm]*float64(dst.Area)/float64(totalArea) + frac*float64(src.Area)/float64(totalArea)
	}
	dst.Area = totalArea
	delete(provinces, from)
}

// reassignContiguousIDs renumbers surviving provinces to a dense 0..k-1
// range and rewrites pixelToID to match.
func reassignContiguousIDs(pixelToID *Grid[int32], provinces map[int]*Province) {
	var ids []int
	for id := range provinces {
		ids = append(ids, id)
	}
	sortInts(ids)

	remap := make(map[int32]int32, len(ids))
	newProvinces := make(map[int]*Province, len(ids))
	for newID, oldID := range ids {
		remap[int32(oldID)] = int32(newID)
		pr := provinces[oldID]
		pr.ID = newID
		newProvinces[newID] = pr
	}
	for i, id := range pixelToID.Data {
		if id >= 0 {
			pixelToID.Data[i] = remap[id]
		}
	}
	for k := range provinces {
		delete(provinces, k)
	}
	for k, v := range newProvinces {
		provinces[k] = v
	}
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
