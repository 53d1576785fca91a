package mapgen

import "math"

// Region is a connected group of same-class provinces, spec.md §3.
type Region struct {
	ID          int
	Color       [3]uint8
	ProvinceIDs []int
}

// groupProvincesIntoRegions implements spec.md §4.10: BFS over the
// adjacency graph restricted to same-class edges; each connected component
// is a region. No size cap, unlike original_source's capped variant, which
// spec.md's uncapped definition supersedes.
func groupProvincesIntoRegions(provinces map[int]*Province) []Region {
	var ids []int
	for id := range provinces {
		ids = append(ids, id)
	}
	sortInts(ids)

	visited := make(map[int]bool, len(ids))
	var regions []Region
	regionID := 0

	for _, start := range ids {
		if visited[start] {
			continue
		}
		t := provinces[start].Type
		queue := []int{start}
		visited[start] = true
		var members []int
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for _, nb := range provinces[cur].Neighbors {
				other := provinces[nb]
				if other == nil || other.Type != t || visited[nb] {
					continue
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
		sortInts(members)
		for _, m := range members {
			provinces[m].RegionID = regionID
		}
		regions = append(regions, Region{
			ID:          regionID,
			Color:       regionColor(regionID, t),
			ProvinceIDs: members,
		})
		regionID++
	}
	return regions
}

// regionColor derives an HSL color from hash(region_id) mod 360 for hue, with
// saturation/lightness set by class (continents saturated, water desaturated
// blue), per spec.md §4.10.
func regionColor(regionID int, t ProvinceType) [3]uint8 {
	hue := float64(hashRange(splitmix64(uint64(regionID)), 360))
	var s, l float64
	switch t {
	case ProvinceContinental:
		s, l = 0.55, 0.45
	default:
		hue = 210 + float64(hashRange(splitmix64(uint64(regionID)), 40))
		s, l = 0.35, 0.40
	}
	return hslToRGB(hue, s, l)
}

func hslToRGB(h, s, l float64) [3]uint8 {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r1, g1, b1 float64
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	m := l - c/2
	return [3]uint8{
		uint8(clamp01(r1+m) * 255),
		uint8(clamp01(g1+m) * 255),
		uint8(clamp01(b1+m) * 255),
	}
}
