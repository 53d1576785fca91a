package mapgen

// Biome classification constants, spec.md §4.5. Fuzzy boundary handling is
// intentionally omitted (spec.md does not require a dithered boundary; the
// "BOUNDARY_FUZZINESS" dithering in original_source/src/biome.rs is tied to
// its own, different biome enum and is not carried over here).
const (
	mountainStart = 0.75
	snowTempLimit = 0.12
	iceTempLimit  = 0.08

	wetHumidity = 0.55
	dryHumidity = 0.35
	hotTemp     = 0.68
	coldTemp    = 0.32

	beachElevMargin = 0.03
)

// generateBiomes implements spec.md §4.5's decision cascade: a pure function
// of bucketed (elevation, temperature, humidity, water tag), first match
// wins, implemented as a short cascade rather than subclassing per spec.md
// §9 "Polymorphism".
func generateBiomes(h, t, hum *Grid[float32], water *Grid[WaterTag], seaLevel float64) *Grid[Biome] {
	b := NewGrid[Biome](h.W, h.H)
	for i := range b.Data {
		elev := float64(h.Data[i])
		temp := float64(t.Data[i])
		humid := float64(hum.Data[i])
		tag := water.Data[i]
		b.Data[i] = classifyBiome(elev, temp, humid, tag, seaLevel)
	}
	return b
}

func classifyBiome(elev, temp, humid float64, tag WaterTag, seaLevel float64) Biome {
	switch tag {
	case Ocean:
		return BiomeOcean
	case Lake:
		return BiomeLake
	}

	// Land past this point.
	if elev > seaLevel && elev < seaLevel+beachElevMargin && temp > iceTempLimit {
		return BiomeBeach
	}

	if elev >= mountainStart {
		if temp < snowTempLimit {
			return BiomeSnowyMountain
		}
		return BiomeRockyMountain
	}

	if temp < iceTempLimit {
		return BiomeIce
	}
	if temp < snowTempLimit {
		if humid > wetHumidity {
			return BiomeTaiga
		}
		return BiomeTundra
	}

	switch {
	case temp >= hotTemp && humid >= wetHumidity:
		return BiomeTropicalRainforest
	case temp >= hotTemp:
		if humid <= dryHumidity {
			return BiomeDesert
		}
		return BiomeSavanna
	case temp <= coldTemp:
		if humid >= wetHumidity {
			return BiomeTaiga
		}
		return BiomeTundra
	case humid >= wetHumidity:
		if temp < 0.5 {
			return BiomeSwamp
		}
		return BiomeTemperateForest
	case humid <= dryHumidity:
		return BiomeShrubland
	default:
		return BiomeGrassland
	}
}
