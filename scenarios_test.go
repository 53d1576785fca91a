package mapgen

import "testing"

// landFraction recomputes the fraction of land cells directly from the
// water classification grid, independent of the sea-level search's own
// bookkeeping.
func landFraction(water *Grid[WaterTag]) float64 {
	var land int
	for _, tag := range water.Data {
		if tag == Land {
			land++
		}
	}
	return float64(land) / float64(len(water.Data))
}

// TestScenarioA implements spec.md's Scenario A: seed=42, W=512, Hgt=256,
// world_type=EarthLike, total_provinces=120.
func TestScenarioA(t *testing.T) {
	p := NewDefaultParams(42, EarthLike)
	p.Width, p.Height = 512, 256
	p.Terrain.TotalProvinces = 120

	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if lf := landFraction(art.Water); lf < 0.28 || lf > 0.32 {
		t.Errorf("land fraction = %v, want in [0.28, 0.32]", lf)
	}

	coastal := 0
	for _, pr := range art.Provinces {
		if pr.Type == ProvinceContinental && pr.Coastal {
			coastal++
		}
	}
	if coastal < 1 {
		t.Errorf("expected at least one coastal province, got %d", coastal)
	}

	longest := 0
	for _, seg := range art.Rivers {
		if len(seg.Cells) > longest {
			longest = len(seg.Cells)
		}
	}
	if longest < 10 {
		t.Errorf("expected at least one river segment with length >= 10, longest is %d", longest)
	}
}

// TestScenarioB implements spec.md's Scenario B: seed=42, world_type=Archipelago,
// island_density=0.8, W=512, Hgt=256.
func TestScenarioB(t *testing.T) {
	p := NewDefaultParams(42, Archipelago)
	p.Width, p.Height = 512, 256
	p.Islands.IslandDensity = 0.8

	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if lf := landFraction(art.Water); lf < 0.13 || lf > 0.17 {
		t.Errorf("land fraction = %v, want in [0.13, 0.17]", lf)
	}
	if len(art.Regions) < 5 {
		t.Errorf("expected at least 5 regions, got %d", len(art.Regions))
	}
	for _, r := range art.Regions {
		if len(r.ProvinceIDs) == 0 {
			continue
		}
		first := art.Provinces[r.ProvinceIDs[0]]
		if first.Type != ProvinceContinental {
			continue // not a land region
		}
		for _, pid := range r.ProvinceIDs {
			if !art.Provinces[pid].Coastal {
				t.Errorf("region %d is a land region but province %d is not coastal (expected pure islands)", r.ID, pid)
			}
		}
	}
}

// TestScenarioC implements spec.md's Scenario C: seed=7, world_type=Mediterranean.
// Checked: at least one Lake region covering more than 1% of the map, or an
// Ocean province whose neighbors are all land provinces (an inland sea).
func TestScenarioC(t *testing.T) {
	p := NewDefaultParams(7, Mediterranean)

	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	largeLake := false
	for _, r := range art.Regions {
		if len(r.ProvinceIDs) == 0 {
			continue
		}
		if art.Provinces[r.ProvinceIDs[0]].Type != ProvinceLake {
			continue
		}
		var area int
		for _, pid := range r.ProvinceIDs {
			area += art.Provinces[pid].Area
		}
		if area > p.Width*p.Height/100 {
			largeLake = true
			break
		}
	}

	enclosedOcean := false
	for _, pr := range art.Provinces {
		if pr.Type != ProvinceOceanic || len(pr.Neighbors) == 0 {
			continue
		}
		allLand := true
		for _, nb := range pr.Neighbors {
			if art.Provinces[nb].Type != ProvinceContinental {
				allLand = false
				break
			}
		}
		if allLand {
			enclosedOcean = true
			break
		}
	}

	if !largeLake && !enclosedOcean {
		t.Error("expected either a large Lake region or an ocean province fully enclosed by land")
	}
}

// TestScenarioD implements spec.md's Scenario D: seed=1, world_type=IceAgeEarth.
// Expected: biome histogram aggregated over the world has Ice+Tundra >= 0.25.
func TestScenarioD(t *testing.T) {
	p := NewDefaultParams(1, IceAgeEarth)

	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var icyOrTundra int
	for _, bm := range art.Biomes.Data {
		if bm == BiomeIce || bm == BiomeTundra {
			icyOrTundra++
		}
	}
	frac := float64(icyOrTundra) / float64(len(art.Biomes.Data))
	if frac < 0.25 {
		t.Errorf("Ice+Tundra fraction = %v, want >= 0.25", frac)
	}
}

// TestScenarioEHeightmapDeterministicAcrossWorkerCounts implements spec.md's
// Scenario E: the same seed produces identical output whether the
// generation work is chunked across 1 worker or 8. The heightmap fill is
// the only stage in the pipeline that's split across goroutines, so
// checking it directly under different worker counts exercises the
// property the scenario names.
func TestScenarioEHeightmapDeterministicAcrossWorkerCounts(t *testing.T) {
	p := NewDefaultParams(99, EarthLike)
	p.Width, p.Height = 128, 64

	oneWorker, seaOne := generateHeightmapWithWorkers(p, 1)
	eightWorkers, seaEight := generateHeightmapWithWorkers(p, 8)
	threeWorkers, seaThree := generateHeightmapWithWorkers(p, 3)

	if seaOne != seaEight || seaOne != seaThree {
		t.Fatalf("sea level differs across worker counts: 1=%v 8=%v 3=%v", seaOne, seaEight, seaThree)
	}
	for i := range oneWorker.Data {
		if oneWorker.Data[i] != eightWorkers.Data[i] {
			t.Fatalf("heightmap diverges between 1 and 8 workers at index %d", i)
		}
		if oneWorker.Data[i] != threeWorkers.Data[i] {
			t.Fatalf("heightmap diverges between 1 and 3 workers at index %d", i)
		}
	}
}

// TestScenarioEFullPipelineDeterministicAcrossRuns complements the worker-
// count check above with the pipeline-level guarantee Scenario E ultimately
// cares about: the full Generate output is identical across repeated runs
// of the same seed, regardless of goroutine scheduling nondeterminism.
func TestScenarioEFullPipelineDeterministicAcrossRuns(t *testing.T) {
	mk := func() *WorldParams {
		p := NewDefaultParams(99, EarthLike)
		p.Width, p.Height = 128, 64
		return p
	}
	a, err := Generate(mk())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(mk())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a.Heightmap.Data {
		if a.Heightmap.Data[i] != b.Heightmap.Data[i] {
			t.Fatalf("heightmap diverges at index %d across runs", i)
		}
	}
	for i := range a.Biomes.Data {
		if a.Biomes.Data[i] != b.Biomes.Data[i] {
			t.Fatalf("biomes diverge at index %d across runs", i)
		}
	}
}
