// Command mapgen generates a world from a TOML config and exports the PNG
// and JSON artifacts spec.md §6 lists, or serves a preview of a previously
// exported directory. Flag-based CLI, grounded on the teacher's
// cmd/server/main.go init()/flag.Parse() idiom.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/pelletier/go-toml/v2"

	"github.com/san-smith/mapgen"
)

var (
	configPath = flag.String("config", "", "path to a TOML world config")
	outputDir  = flag.String("output", "output", "directory to write exported files to")
	seed       = flag.Uint64("seed", 42, "world seed (used when -config is omitted)")
	worldType  = flag.String("world_type", "EarthLike", "world type (used when -config is omitted)")
	width      = flag.Int("width", 512, "world width (used when -config is omitted)")
	height     = flag.Int("height", 256, "world height (used when -config is omitted)")
	verbose    = flag.Bool("verbose", true, "log per-stage timings")
	servePort  = flag.String("serve", "", "if set, serve -output as a preview on this address instead of generating")
)

// tomlConfig mirrors WorldParams' shape for TOML decoding, the external
// collaborator spec.md §6 carves out of the core.
type tomlConfig struct {
	Seed    uint64 `toml:"seed"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Type    string `toml:"world_type"`
	Climate struct {
		GlobalTemperatureOffset float64 `toml:"global_temperature_offset"`
		GlobalHumidityOffset    float64 `toml:"global_humidity_offset"`
		PolarAmplification      float64 `toml:"polar_amplification"`
		ClimateLatitudeExponent float64 `toml:"climate_latitude_exponent"`
	} `toml:"climate"`
	Islands struct {
		IslandDensity float64 `toml:"island_density"`
		MinIslandSize uint32  `toml:"min_island_size"`
	} `toml:"islands"`
	Terrain struct {
		ElevationPower      float64 `toml:"elevation_power"`
		SmoothRadius        int     `toml:"smooth_radius"`
		MountainCompression float64 `toml:"mountain_compression"`
		TotalProvinces      int     `toml:"total_provinces"`
	} `toml:"terrain"`
}

func worldTypeFromString(s string) (mapgen.WorldType, error) {
	switch s {
	case "EarthLike":
		return mapgen.EarthLike, nil
	case "Supercontinent":
		return mapgen.Supercontinent, nil
	case "Archipelago":
		return mapgen.Archipelago, nil
	case "Mediterranean":
		return mapgen.Mediterranean, nil
	case "IceAgeEarth":
		return mapgen.IceAgeEarth, nil
	case "DesertMediterranean":
		return mapgen.DesertMediterranean, nil
	default:
		return 0, fmt.Errorf("unknown world_type %q", s)
	}
}

func loadParams() (*mapgen.WorldParams, error) {
	if *configPath == "" {
		t, err := worldTypeFromString(*worldType)
		if err != nil {
			return nil, err
		}
		p := mapgen.NewDefaultParams(*seed, t)
		p.Width, p.Height = *width, *height
		p.Verbose = *verbose
		return p, nil
	}

	data, err := os.ReadFile(*configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg tomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	t, err := worldTypeFromString(cfg.Type)
	if err != nil {
		return nil, err
	}
	p := &mapgen.WorldParams{
		Seed:   cfg.Seed,
		Width:  cfg.Width,
		Height: cfg.Height,
		Type:   t,
		Climate: mapgen.ClimateSettings{
			GlobalTemperatureOffset: cfg.Climate.GlobalTemperatureOffset,
			GlobalHumidityOffset:    cfg.Climate.GlobalHumidityOffset,
			PolarAmplification:      cfg.Climate.PolarAmplification,
			ClimateLatitudeExponent: cfg.Climate.ClimateLatitudeExponent,
		},
		Islands: mapgen.IslandSettings{
			IslandDensity: cfg.Islands.IslandDensity,
			MinIslandSize: cfg.Islands.MinIslandSize,
		},
		Terrain: mapgen.TerrainSettings{
			ElevationPower:      cfg.Terrain.ElevationPower,
			SmoothRadius:        cfg.Terrain.SmoothRadius,
			MountainCompression: cfg.Terrain.MountainCompression,
			TotalProvinces:      cfg.Terrain.TotalProvinces,
		},
		Verbose: *verbose,
	}
	return p, nil
}

func main() {
	flag.Parse()

	if *servePort != "" {
		serve(*servePort, *outputDir)
		return
	}

	params, err := loadParams()
	if err != nil {
		log.Fatal(err)
	}

	world, err := mapgen.Generate(params)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatal(err)
	}
	if err := exportAll(world, *outputDir); err != nil {
		log.Fatal(err)
	}
	log.Printf("generated %d provinces, %d regions, %d strategic points -> %s",
		len(world.Provinces), len(world.Regions), len(world.Strategic), *outputDir)
}

func exportAll(world *mapgen.WorldArtifacts, dir string) error {
	type export struct {
		name string
		fn   func(f *os.File) error
	}
	exports := []export{
		{"heightmap.png", func(f *os.File) error { return mapgen.ExportHeightmapPNG(f, world.Heightmap) }},
		{"heightmap_preview.png", func(f *os.File) error { return mapgen.ExportHeightmapPreviewPNG(f, world.Heightmap) }},
		{"normals.png", func(f *os.File) error { return mapgen.ExportNormalsPNG(f, world.Heightmap) }},
		{"biomes.png", func(f *os.File) error { return mapgen.ExportBiomesPNG(f, world.Biomes) }},
		{"rivers.png", func(f *os.File) error { return mapgen.ExportRiversPNG(f, world.Biomes) }},
		{"provinces.png", func(f *os.File) error { return mapgen.ExportProvincesPNG(f, world.PixelToID) }},
		{"regions.png", func(f *os.File) error { return mapgen.ExportRegionsPNG(f, world.PixelToID, world.Provinces, world.Regions) }},
		{"provinces.json", func(f *os.File) error { return mapgen.ExportProvincesJSON(f, world.Provinces) }},
		{"regions.json", func(f *os.File) error { return mapgen.ExportRegionsJSON(f, world.Regions) }},
		{"provinces.geojson", func(f *os.File) error { return mapgen.ExportProvincesGeoJSON(f, world.Provinces) }},
	}
	for _, e := range exports {
		if err := writeExport(dir, e.name, e.fn); err != nil {
			return fmt.Errorf("export %s: %w", e.name, err)
		}
	}
	return nil
}

func writeExport(dir, name string, fn func(f *os.File) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

// serve starts a minimal preview HTTP server over a previously exported
// output directory, grounded on the teacher's gorilla/mux tile server,
// scoped down to a static file server since the core has no sphere-mesh
// tile concept.
func serve(addr, dir string) {
	router := mux.NewRouter()
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
	log.Printf("serving %s on %s", dir, addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
