package mapgen

import "testing"

func TestClassifyBiomeWaterFirst(t *testing.T) {
	if got := classifyBiome(0.1, 0.5, 0.5, Ocean, 0.5); got != BiomeOcean {
		t.Errorf("Ocean tag should always yield BiomeOcean, got %v", got)
	}
	if got := classifyBiome(0.1, 0.5, 0.5, Lake, 0.5); got != BiomeLake {
		t.Errorf("Lake tag should always yield BiomeLake, got %v", got)
	}
}

func TestClassifyBiomeMountainsOverrideClimate(t *testing.T) {
	got := classifyBiome(0.9, 0.9, 0.9, Land, 0.5)
	if got != BiomeRockyMountain {
		t.Errorf("high elevation + warm temp should be RockyMountain, got %v", got)
	}
	got = classifyBiome(0.9, 0.05, 0.9, Land, 0.5)
	if got != BiomeSnowyMountain {
		t.Errorf("high elevation + freezing temp should be SnowyMountain, got %v", got)
	}
}

func TestClassifyBiomeDeterministic(t *testing.T) {
	a := classifyBiome(0.6, 0.7, 0.8, Land, 0.5)
	b := classifyBiome(0.6, 0.7, 0.8, Land, 0.5)
	if a != b {
		t.Fatal("classifyBiome is not a pure function of its inputs")
	}
}

func TestClassifyBiomeDesertVsRainforest(t *testing.T) {
	hot := classifyBiome(0.55, 0.9, 0.1, Land, 0.5)
	if hot != BiomeDesert {
		t.Errorf("hot+dry should be Desert, got %v", hot)
	}
	hotWet := classifyBiome(0.55, 0.9, 0.9, Land, 0.5)
	if hotWet != BiomeTropicalRainforest {
		t.Errorf("hot+wet should be TropicalRainforest, got %v", hotWet)
	}
}

func TestGenerateBiomesHistogramInputsMatchTags(t *testing.T) {
	h := NewGrid[float32](6, 6)
	tmp := NewGrid[float32](6, 6)
	hum := NewGrid[float32](6, 6)
	water := NewGrid[WaterTag](6, 6)
	for i := range h.Data {
		h.Data[i] = 0.6
		tmp.Data[i] = 0.6
		hum.Data[i] = 0.6
	}
	water.Set(0, 0, Ocean)

	b := generateBiomes(h, tmp, hum, water, 0.5)
	if b.At(0, 0) != BiomeOcean {
		t.Errorf("water cell must classify as BiomeOcean, got %v", b.At(0, 0))
	}
}
