package mapgen

import "math"

// Grid is a dense W*H lattice of T. X wraps (longitude); Y does not (the
// poles are rows y=0 and y=H-1). Every neighbor lookup on X must go through
// WrapX; this is the cylindrical domain spec.md §3 describes.
type Grid[T any] struct {
	W, H int
	Data []T
}

// NewGrid allocates a zero-valued W*H grid.
func NewGrid[T any](w, h int) *Grid[T] {
	return &Grid[T]{W: w, H: h, Data: make([]T, w*h)}
}

// WrapX normalizes an X coordinate into [0, W) by wrapping.
func (g *Grid[T]) WrapX(x int) int {
	x %= g.W
	if x < 0 {
		x += g.W
	}
	return x
}

// ClampY clamps a Y coordinate into [0, H).
func (g *Grid[T]) ClampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= g.H {
		return g.H - 1
	}
	return y
}

// Idx returns the flat index for (x,y), wrapping X and clamping Y.
func (g *Grid[T]) Idx(x, y int) int {
	return g.ClampY(y)*g.W + g.WrapX(x)
}

func (g *Grid[T]) At(x, y int) T {
	return g.Data[g.Idx(x, y)]
}

func (g *Grid[T]) Set(x, y int, v T) {
	g.Data[g.Idx(x, y)] = v
}

// XY converts a flat index back into (x,y).
func (g *Grid[T]) XY(idx int) (int, int) {
	return idx % g.W, idx / g.W
}

// Neighbors4 returns the 4-neighborhood of (x,y), X-wrapped, Y-clamped and
// deduplicated at the poles (where the clamp can fold north/south into the
// same row twice).
func (g *Grid[T]) Neighbors4(x, y int) [][2]int {
	out := make([][2]int, 0, 4)
	seen := func(nx, ny int) bool {
		for _, p := range out {
			if p[0] == nx && p[1] == ny {
				return true
			}
		}
		return false
	}
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := g.WrapX(x+d[0]), g.ClampY(y+d[1])
		if (nx != x || ny != y) && !seen(nx, ny) {
			out = append(out, [2]int{nx, ny})
		}
	}
	return out
}

// Neighbors8 returns the 8-neighborhood of (x,y), X-wrapped, Y-clamped.
func (g *Grid[T]) Neighbors8(x, y int) [][2]int {
	out := make([][2]int, 0, 8)
	seen := func(nx, ny int) bool {
		for _, p := range out {
			if p[0] == nx && p[1] == ny {
				return true
			}
		}
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := g.WrapX(x+dx), g.ClampY(y+dy)
			if (nx != x || ny != y) && !seen(nx, ny) {
				out = append(out, [2]int{nx, ny})
			}
		}
	}
	return out
}

// DeltaX returns the shorter signed wrap-aware distance from x0 to x1.
func (g *Grid[T]) DeltaX(x0, x1 int) int {
	d := x1 - x0
	half := g.W / 2
	for d > half {
		d -= g.W
	}
	for d < -half {
		d += g.W
	}
	return d
}

// WaterTag classifies a cell as Ocean, Lake, or Land per spec.md §4.3.
type WaterTag uint8

const (
	Land WaterTag = iota
	Ocean
	Lake
)

func (w WaterTag) String() string {
	switch w {
	case Ocean:
		return "Ocean"
	case Lake:
		return "Lake"
	default:
		return "Land"
	}
}

// Biome is the fixed 16-tag enumeration from spec.md §3.
type Biome uint8

const (
	BiomeOcean Biome = iota
	BiomeLake
	BiomeIce
	BiomeTundra
	BiomeTaiga
	BiomeSwamp
	BiomeTemperateForest
	BiomeTropicalRainforest
	BiomeGrassland
	BiomeSavanna
	BiomeDesert
	BiomeShrubland
	BiomeRockyMountain
	BiomeSnowyMountain
	BiomeBeach
	BiomeRiver
	biomeCount
)

var biomeNames = [biomeCount]string{
	"Ocean", "Lake", "Ice", "Tundra", "Taiga", "Swamp", "TemperateForest",
	"TropicalRainforest", "Grassland", "Savanna", "Desert", "Shrubland",
	"RockyMountain", "SnowyMountain", "Beach", "River",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "Unknown"
}

// biomeFromString reverses Biome.String, for decoding exported biome
// histogram keys back into their Biome tag.
func biomeFromString(name string) (Biome, bool) {
	for i, n := range biomeNames {
		if n == name {
			return Biome(i), true
		}
	}
	return 0, false
}

// BiomeAttrs holds the static per-biome attributes spec.md §3 requires:
// movement cost, display color and fertility class.
type BiomeAttrs struct {
	MovementCost float64
	Color        [3]uint8
	Fertility    int // 0 = barren, 1 = poor, 2 = moderate, 3 = rich
}

var biomeAttrTable = [biomeCount]BiomeAttrs{
	BiomeOcean:              {MovementCost: math.Inf(1), Color: [3]uint8{20, 60, 140}, Fertility: 0},
	BiomeLake:               {MovementCost: math.Inf(1), Color: [3]uint8{40, 100, 180}, Fertility: 0},
	BiomeIce:                {MovementCost: 3.0, Color: [3]uint8{230, 240, 250}, Fertility: 0},
	BiomeTundra:             {MovementCost: 2.0, Color: [3]uint8{160, 170, 150}, Fertility: 1},
	BiomeTaiga:              {MovementCost: 1.5, Color: [3]uint8{70, 110, 90}, Fertility: 2},
	BiomeSwamp:              {MovementCost: 2.5, Color: [3]uint8{80, 100, 60}, Fertility: 2},
	BiomeTemperateForest:    {MovementCost: 1.5, Color: [3]uint8{50, 120, 50}, Fertility: 3},
	BiomeTropicalRainforest: {MovementCost: 2.0, Color: [3]uint8{20, 100, 30}, Fertility: 3},
	BiomeGrassland:          {MovementCost: 1.0, Color: [3]uint8{140, 180, 80}, Fertility: 3},
	BiomeSavanna:            {MovementCost: 1.0, Color: [3]uint8{190, 170, 90}, Fertility: 2},
	BiomeDesert:             {MovementCost: 1.5, Color: [3]uint8{220, 200, 140}, Fertility: 0},
	BiomeShrubland:          {MovementCost: 1.2, Color: [3]uint8{170, 160, 110}, Fertility: 1},
	BiomeRockyMountain:      {MovementCost: 3.0, Color: [3]uint8{120, 110, 100}, Fertility: 0},
	BiomeSnowyMountain:      {MovementCost: 3.5, Color: [3]uint8{240, 240, 245}, Fertility: 0},
	BiomeBeach:              {MovementCost: 1.0, Color: [3]uint8{230, 220, 170}, Fertility: 1},
	BiomeRiver:              {MovementCost: 1.2, Color: [3]uint8{60, 140, 220}, Fertility: 3},
}

// Attrs returns the static attributes for biome b.
func (b Biome) Attrs() BiomeAttrs {
	return biomeAttrTable[b]
}
