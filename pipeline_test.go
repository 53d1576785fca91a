package mapgen

import "testing"

func smallDeterministicParams(seed uint64, t WorldType) *WorldParams {
	p := NewDefaultParams(seed, t)
	p.Width, p.Height = 48, 32
	p.Terrain.TotalProvinces = 16
	return p
}

func TestGenerateDeterministicAcrossRuns(t *testing.T) {
	p1 := smallDeterministicParams(1234, EarthLike)
	p2 := smallDeterministicParams(1234, EarthLike)

	a, err := Generate(p1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(p2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.SeaLevel != b.SeaLevel {
		t.Fatalf("sea level differs across identical-seed runs: %v vs %v", a.SeaLevel, b.SeaLevel)
	}
	for i := range a.Heightmap.Data {
		if a.Heightmap.Data[i] != b.Heightmap.Data[i] {
			t.Fatalf("heightmap diverges at index %d across identical-seed runs", i)
		}
	}
	for i := range a.Biomes.Data {
		if a.Biomes.Data[i] != b.Biomes.Data[i] {
			t.Fatalf("biomes diverge at index %d across identical-seed runs", i)
		}
	}
	if len(a.Provinces) != len(b.Provinces) {
		t.Fatalf("province count diverges: %d vs %d", len(a.Provinces), len(b.Provinces))
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a, err := Generate(smallDeterministicParams(1, EarthLike))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(smallDeterministicParams(2, EarthLike))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	diff := false
	for i := range a.Heightmap.Data {
		if a.Heightmap.Data[i] != b.Heightmap.Data[i] {
			diff = true
			break
		}
	}
	if !diff {
		t.Errorf("expected different seeds to produce different heightmaps")
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	p := smallDeterministicParams(1, EarthLike)
	p.Width = 8
	p.Height = 8
	if _, err := Generate(p); err == nil {
		t.Fatal("expected Generate to reject undersized dimensions")
	}
}

func TestGenerateAcrossAllWorldTypes(t *testing.T) {
	for _, wt := range []WorldType{EarthLike, Supercontinent, Archipelago, Mediterranean, IceAgeEarth, DesertMediterranean} {
		p := smallDeterministicParams(42, wt)
		art, err := Generate(p)
		if err != nil {
			t.Fatalf("Generate(%v): %v", wt, err)
		}
		if len(art.Provinces) == 0 {
			t.Errorf("Generate(%v): expected at least one province", wt)
		}
		if len(art.Regions) == 0 {
			t.Errorf("Generate(%v): expected at least one region", wt)
		}
	}
}

func TestGeneratePixelsAllClaimedByAProvince(t *testing.T) {
	p := smallDeterministicParams(9, EarthLike)
	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, id := range art.PixelToID.Data {
		if art.Provinces[int(id)] == nil {
			x, y := art.PixelToID.XY(i)
			t.Fatalf("pixel (%d,%d) references missing province %d", x, y, id)
		}
	}
}

func TestGenerateEveryRegionMapsToExistingProvinces(t *testing.T) {
	p := smallDeterministicParams(5, Archipelago)
	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, r := range art.Regions {
		for _, pid := range r.ProvinceIDs {
			if art.Provinces[pid] == nil {
				t.Fatalf("region %d references missing province %d", r.ID, pid)
			}
			if art.Provinces[pid].RegionID != r.ID {
				t.Fatalf("province %d RegionID mismatch: has %d, region claims %d", pid, art.Provinces[pid].RegionID, r.ID)
			}
		}
	}
}

func TestGenerateStrategicPointsReferenceRealProvinces(t *testing.T) {
	p := smallDeterministicParams(3, EarthLike)
	art, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, sp := range art.Strategic {
		if art.Provinces[sp.ProvinceID] == nil {
			t.Errorf("strategic point at (%d,%d) references missing province %d", sp.X, sp.Y, sp.ProvinceID)
		}
	}
}
