package mapgen

import (
	"log"
	"time"
)

// WorldArtifacts bundles every output of Generate, per spec.md §6.
type WorldArtifacts struct {
	Params *WorldParams

	Heightmap   *Grid[float32]
	Water       *Grid[WaterTag]
	Temperature *Grid[float32]
	Humidity    *Grid[float32]
	Biomes      *Grid[Biome]
	Flow        *Grid[float64]
	PixelToID   *Grid[int32]

	SeaLevel float64

	Provinces map[int]*Province
	Regions   []Region
	Rivers    []RiverSegment
	Strategic []StrategicPoint
}

// Generate is the single core entry point, spec.md §6's generate_world. It
// never touches the filesystem; config decoding and file writing live in
// cmd/, which calls the io.Writer-based exporters in export.go.
func Generate(p *WorldParams) (*WorldArtifacts, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	art := &WorldArtifacts{Params: p}

	runStage(p, "heightmap", func() {
		art.Heightmap, art.SeaLevel = generateHeightmap(p)
	})

	runStage(p, "erosion", func() {
		applyErosion(art.Heightmap, p, art.SeaLevel)
	})

	var waterErr error
	runStage(p, "water classification", func() {
		art.Water, waterErr = classifyWater(art.Heightmap, art.SeaLevel)
	})
	if waterErr != nil {
		return nil, waterErr
	}

	runStage(p, "temperature", func() {
		art.Temperature = generateTemperature(art.Heightmap, p, art.SeaLevel)
	})

	var wind *Wind
	runStage(p, "wind & humidity", func() {
		wind = generateWind(p.Width, p.Height)
		art.Humidity = generateHumidity(art.Heightmap, art.Water, wind, p, art.SeaLevel)
	})

	runStage(p, "biomes", func() {
		art.Biomes = generateBiomes(art.Heightmap, art.Temperature, art.Humidity, art.Water, art.SeaLevel)
	})

	runStage(p, "rivers", func() {
		humidityMean := meanGrid(art.Humidity)
		art.Flow, art.Rivers = generateRivers(art.Heightmap, art.Humidity, art.Water, art.SeaLevel, humidityMean)
		tagRiverBiomes(art.Biomes, art.Rivers)
	})

	var seeds []provinceSeed
	var seedErr error
	runStage(p, "province seeds", func() {
		seeds, seedErr = generateProvinceSeeds(art.Heightmap, art.Water, art.Temperature, art.Humidity, art.SeaLevel, art.Rivers, p)
	})
	if seedErr != nil {
		return nil, seedErr
	}

	runStage(p, "province growth", func() {
		pixelToID, _ := growProvinces(art.Heightmap, art.Water, seeds)
		art.PixelToID = pixelToID
		art.Provinces = buildProvinces(art.Heightmap, art.Water, art.Biomes, pixelToID, seeds)
	})

	runStage(p, "province merge & graph", func() {
		mergeSmallProvinces(art.PixelToID, art.Provinces, p.Width*p.Height, p.Terrain.TotalProvinces)
		buildAdjacencyGraph(art.PixelToID, art.Provinces)
	})

	runStage(p, "region grouping", func() {
		art.Regions = groupProvincesIntoRegions(art.Provinces)
	})

	runStage(p, "strategic points", func() {
		art.Strategic = findStrategicPoints(art.Heightmap, art.PixelToID, art.Provinces, art.Rivers, art.SeaLevel)
	})

	return art, nil
}

// runStage times a stage as the teacher's generateGeology() does: one log
// line on exit with the stage name and elapsed duration, gated by Verbose.
func runStage(p *WorldParams, name string, fn func()) {
	start := time.Now()
	fn()
	if p.Verbose {
		log.Println("Done", name, "in", time.Since(start).String())
	}
}

func meanGrid(g *Grid[float32]) float64 {
	var sum float64
	for _, v := range g.Data {
		sum += float64(v)
	}
	return sum / float64(len(g.Data))
}
