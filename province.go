package mapgen

import (
	"container/heap"
	"math"
	"sort"

	"github.com/san-smith/mapgen/various"
)

// ProvinceType classifies a province by its water/land class, spec.md §3.
type ProvinceType int

const (
	ProvinceContinental ProvinceType = iota
	ProvinceOceanic
	ProvinceLake
)

// Province is the administrative unit spec.md §3 describes. Neighbors are
// referenced by id, not pointer, per spec.md §9's arena+integer-id scheme.
type Province struct {
	ID          int
	CenterX     float64
	CenterY     float64
	Area        int
	Type        ProvinceType
	Coastal     bool
	BiomeHist   map[Biome]float64
	Neighbors   []int
	RegionID    int
}

type provinceSeed struct {
	id     int
	x, y   int
	land   bool
}

// generateProvinceSeeds implements spec.md §4.7's seed placement: split the
// target count by land fraction, then place weighted, minimum-distance seeds
// (see poissonDiskSeeds) separately over land and water, X-wrap aware.
func generateProvinceSeeds(h *Grid[float32], water *Grid[WaterTag], temp, hum *Grid[float32], seaLevel float64, rivers []RiverSegment, p *WorldParams) ([]provinceSeed, error) {
	stageSeed := subSeed(p.Seed, 8)
	w, hgt := h.W, h.H
	total := p.Terrain.TotalProvinces

	var landCount, waterCount int
	for _, tag := range water.Data {
		if tag == Land {
			landCount++
		} else {
			waterCount++
		}
	}
	landFraction := float64(landCount) / float64(w*hgt)
	nLand := int(math.Round(float64(total) * landFraction))
	if nLand < 1 {
		nLand = 1
	}
	nWater := total - nLand
	if nWater < 1 {
		nWater = 1
	}

	landSeeds, err := poissonDiskSeeds(h, water, temp, hum, seaLevel, rivers, stageSeed^0x1, nLand, landCount, true)
	if err != nil {
		return nil, err
	}
	waterSeeds, err := poissonDiskSeeds(h, water, temp, hum, seaLevel, rivers, stageSeed^0x2, nWater, waterCount, false)
	if err != nil {
		return nil, err
	}

	seeds := make([]provinceSeed, 0, len(landSeeds)+len(waterSeeds))
	id := 0
	for _, s := range landSeeds {
		seeds = append(seeds, provinceSeed{id: id, x: s[0], y: s[1], land: true})
		id++
	}
	for _, s := range waterSeeds {
		seeds = append(seeds, provinceSeed{id: id, x: s[0], y: s[1], land: false})
		id++
	}
	return seeds, nil
}

// poissonDiskSeeds places up to n weighted samples of the requested class by
// a greedy minimum-distance pass over every candidate cell sorted by weight
// (not Bridson's active-list sampling): minimum distance
// r = sqrt(area/n/pi) * 0.9, X-wrap aware distance. If that pass places
// fewer than n seeds, a second pass relaxes the minimum distance to r/2.
// Land candidates are weighted by a
// temp*humid*(1-|elevation-sea_level|)-style desirability computed from the
// actual temperature/humidity grids, grounded on
// original_source/province/generator.rs's generate_province_seeds (which
// scores land candidates the same way, off a biome-derived proxy for
// humidity rather than the humidity grid directly, since this pipeline
// already carries one), boosted near rivers since settlements cluster
// along them. Water candidates carry no desirability score in the
// original either — it picks sea seeds uniformly at random — so they're
// weighted by a pure positional hash here, which gives the same
// "no preferred spot" behavior while staying deterministic under the stage
// seed. Both classes are then sampled in descending-weight order with even
// striding.
func poissonDiskSeeds(h *Grid[float32], water *Grid[WaterTag], temp, hum *Grid[float32], seaLevel float64, rivers []RiverSegment, seed uint64, n, areaPerClass int, land bool) ([][2]int, error) {
	w, hgt := h.W, h.H
	r := math.Sqrt(float64(areaPerClass)/float64(n)/math.Pi) * 0.9

	type cand struct {
		x, y   int
		weight float64
	}
	var cands []cand
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			isLand := water.Data[idx] == Land
			if isLand != land {
				continue
			}
			var weight float64
			if land {
				flatness := 1 - math.Abs(float64(h.Data[idx])-seaLevel)
				weight = float64(temp.Data[idx]) * float64(hum.Data[idx]) * flatness * riverProximityBonus(rivers, x, y)
			} else {
				weight = hashFloat01(cellHash(seed, x, y))
			}
			cands = append(cands, cand{x: x, y: y, weight: weight})
		}
	}
	if len(cands) == 0 {
		return nil, &SeedPlacementFailedError{Requested: n, Placed: 0, Class: classLabel(land)}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].weight > cands[j].weight })

	var placed [][2]int
	stride := len(cands) / (n * 4)
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(cands) && len(placed) < n; i += stride {
		c := cands[i]
		ok := true
		for _, p := range placed {
			dx := float64(h.DeltaX(p[0], c.x))
			dy := float64(p[1] - c.y)
			if various.Len2([2]float64{dx, dy}) < r {
				ok = false
				break
			}
		}
		if ok {
			placed = append(placed, [2]int{c.x, c.y})
		}
	}
	// Fall back to a denser scan if striding under-placed.
	if len(placed) < n {
		for _, c := range cands {
			if len(placed) >= n {
				break
			}
			dup := false
			for _, p := range placed {
				if p[0] == c.x && p[1] == c.y {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			ok := true
			for _, p := range placed {
				dx := float64(h.DeltaX(p[0], c.x))
				dy := float64(p[1] - c.y)
				if various.Len2([2]float64{dx, dy}) < r*0.5 {
					ok = false
					break
				}
			}
			if ok {
				placed = append(placed, [2]int{c.x, c.y})
			}
		}
	}
	if len(placed) == 0 {
		return nil, &SeedPlacementFailedError{Requested: n, Placed: 0, Class: classLabel(land)}
	}
	return placed, nil
}

// riverDistanceFalloff is the distance, in cells, at which the river
// proximity bonus's excess over 1 has decayed to half its peak value.
const riverDistanceFalloff = 12.0

// riverProximityBonus returns a desirability multiplier in (1, 2] that
// grows as (x, y) nears any river segment's polyline, measured with
// various.DistToSegment2 against each consecutive pair of cells. The
// multiplier approaches 1 with distance from every river; it is exactly 1
// (no effect on weight) only when there are no rivers.
func riverProximityBonus(rivers []RiverSegment, x, y int) float64 {
	if len(rivers) == 0 {
		return 1
	}
	p := [2]float64{float64(x), float64(y)}
	best := math.Inf(1)
	for _, seg := range rivers {
		for i := 0; i+1 < len(seg.Cells); i++ {
			v := [2]float64{float64(seg.Cells[i][0]), float64(seg.Cells[i][1])}
			w := [2]float64{float64(seg.Cells[i+1][0]), float64(seg.Cells[i+1][1])}
			if d := various.DistToSegment2(v, w, p); d < best {
				best = d
			}
		}
	}
	return 1 + 1/(1+best/riverDistanceFalloff)
}

func classLabel(land bool) string {
	if land {
		return "land"
	}
	return "water"
}

// frontierItem is a priority-queue entry for the multi-source BFS growth.
type frontierItem struct {
	dist     float64
	seedID   int
	x, y     int
}

type frontierHeap []frontierItem

func (f frontierHeap) Len() int { return len(f) }
func (f frontierHeap) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	if f[i].seedID != f[j].seedID {
		return f[i].seedID < f[j].seedID
	}
	if f[i].x != f[j].x {
		return f[i].x < f[j].x
	}
	return f[i].y < f[j].y
}
func (f frontierHeap) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontierHeap) Push(x any)        { *f = append(*f, x.(frontierItem)) }
func (f *frontierHeap) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// growProvinces implements spec.md §4.7's flood-fill growth: multi-source
// BFS from all seeds simultaneously via a priority queue ordered by
// distance-from-seed with a (seed id, x, y) tie-break, same-class claiming
// only, cost 1+elevation-difference for land.
func growProvinces(h *Grid[float32], water *Grid[WaterTag], seeds []provinceSeed) (pixelToID *Grid[int32], claimedBy []int) {
	w, hgt := h.W, h.H
	n := w * hgt
	pixelToID = NewGrid[int32](w, hgt)
	for i := range pixelToID.Data {
		pixelToID.Data[i] = -1
	}
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	seedOfCell := make([]int, n)
	for i := range seedOfCell {
		seedOfCell[i] = -1
	}

	pq := &frontierHeap{}
	heap.Init(pq)
	for _, s := range seeds {
		idx := h.Idx(s.x, s.y)
		if seedClassMatches(water.Data[idx], s.land) {
			dist[idx] = 0
			seedOfCell[idx] = s.id
			heap.Push(pq, frontierItem{dist: 0, seedID: s.id, x: s.x, y: s.y})
		}
	}

	seedByID := make(map[int]provinceSeed, len(seeds))
	for _, s := range seeds {
		seedByID[s.id] = s
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(frontierItem)
		idx := h.Idx(item.x, item.y)
		if item.dist > dist[idx] || seedOfCell[idx] != item.seedID {
			continue
		}
		s := seedByID[item.seedID]
		for _, nb := range h.Neighbors4(item.x, item.y) {
			nidx := h.Idx(nb[0], nb[1])
			if !seedClassMatches(water.Data[nidx], s.land) {
				continue
			}
			cost := 1.0
			if s.land {
				cost = 1 + math.Abs(float64(h.Data[nidx])-float64(h.Data[idx]))
			}
			nd := item.dist + cost
			if nd < dist[nidx] {
				dist[nidx] = nd
				seedOfCell[nidx] = item.seedID
				heap.Push(pq, frontierItem{dist: nd, seedID: item.seedID, x: nb[0], y: nb[1]})
			}
		}
	}

	// Leftover-pixel fallback: any cell never reached (shouldn't normally
	// happen given the dense seeding) is assigned to the nearest seed of its
	// own class by raw distance.
	for idx := 0; idx < n; idx++ {
		if seedOfCell[idx] < 0 {
			x, y := h.XY(idx)
			best, bestD := -1, math.Inf(1)
			for _, s := range seeds {
				if !seedClassMatches(water.Data[idx], s.land) {
					continue
				}
				dx := float64(h.DeltaX(s.x, x))
				dy := float64(s.y - y)
				d := dx*dx + dy*dy
				if d < bestD {
					bestD = d
					best = s.id
				}
			}
			seedOfCell[idx] = best
		}
	}

	for idx := 0; idx < n; idx++ {
		pixelToID.Data[idx] = int32(seedOfCell[idx])
	}
	return pixelToID, seedOfCell
}

func seedClassMatches(tag WaterTag, land bool) bool {
	if land {
		return tag == Land
	}
	return tag == Ocean || tag == Lake
}

// buildProvinces aggregates per-seed cell sets into Province records:
// area, biome histogram, center-of-mass (X averaged on the unit circle per
// spec.md §9), and type.
func buildProvinces(h *Grid[float32], water *Grid[WaterTag], b *Grid[Biome], pixelToID *Grid[int32], seeds []provinceSeed) map[int]*Province {
	provinces := make(map[int]*Province)
	for _, s := range seeds {
		t := ProvinceContinental
		if !s.land {
			t = ProvinceOceanic // refined to ProvinceLake below once water tag is known
		}
		provinces[s.id] = &Province{ID: s.id, Type: t, BiomeHist: make(map[Biome]float64)}
	}

	sinSum := make(map[int]float64)
	cosSum := make(map[int]float64)
	ySum := make(map[int]float64)
	biomeCounts := make(map[int]map[Biome]int)
	waterKind := make(map[int]WaterTag)

	w, hgt := h.W, h.H
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			id := int(pixelToID.Data[idx])
			if id < 0 {
				continue
			}
			pr := provinces[id]
			if pr == nil {
				continue
			}
			pr.Area++
			u := 2 * math.Pi * float64(x) / float64(w)
			sinSum[id] += math.Sin(u)
			cosSum[id] += math.Cos(u)
			ySum[id] += float64(y)
			if biomeCounts[id] == nil {
				biomeCounts[id] = make(map[Biome]int)
			}
			biomeCounts[id][b.Data[idx]]++
			waterKind[id] = water.Data[idx]
		}
	}

	for id, pr := range provinces {
		if pr.Area == 0 {
			continue
		}
		angle := math.Atan2(sinSum[id], cosSum[id])
		if angle < 0 {
			angle += 2 * math.Pi
		}
		pr.CenterX = angle / (2 * math.Pi) * float64(w)
		pr.CenterY = ySum[id] / float64(pr.Area)

		switch waterKind[id] {
		case Ocean:
			pr.Type = ProvinceOceanic
		case Lake:
			pr.Type = ProvinceLake
		default:
			pr.Type = ProvinceContinental
		}

		total := 0
		for _, c := range biomeCounts[id] {
			total += c
		}
		for bm, c := range biomeCounts[id] {
			pr.BiomeHist[bm] = float64(c) / float64(total)
		}
	}
	return provinces
}
