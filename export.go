package mapgen

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"
	geojson "github.com/paulmach/go.geojson"

	"github.com/san-smith/mapgen/various"
)

// ExportHeightmapPNG writes H as 16-bit grayscale, per spec.md §6.
func ExportHeightmapPNG(w io.Writer, h *Grid[float32]) error {
	img := image.NewGray16(image.Rect(0, 0, h.W, h.H))
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			v := clamp01(float64(h.At(x, y)))
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return png.Encode(w, img)
}

// ExportHeightmapPreviewPNG writes a false-color elevation preview, grounded
// on the teacher's colorgrad-based elevation gradient display mode. This is
// a supplemented export, not part of spec.md's required file list.
func ExportHeightmapPreviewPNG(w io.Writer, h *Grid[float32]) error {
	grad, err := colorgrad.NewGradient().
		HtmlColors("#0b3d91", "#1e88e5", "#a1887f", "#6d4c41", "#4e342e", "#ffffff").
		Domain(0, 1).
		Build()
	if err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, h.W, h.H))
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			v := clamp01(float64(h.At(x, y)))
			img.Set(x, y, grad.At(v))
		}
	}
	return png.Encode(w, img)
}

// ExportBiomesPNG writes an image colored by the biome table, one color per
// biome. The PNG is truecolor RGBA, not an 8-bit paletted image.
func ExportBiomesPNG(w io.Writer, b *Grid[Biome]) error {
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for i, bm := range b.Data {
		x, y := b.XY(i)
		c := bm.Attrs().Color
		img.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
	}
	return png.Encode(w, img)
}

// ExportRiversPNG overlays blue river cells onto the biome map, per spec.md §6.
func ExportRiversPNG(w io.Writer, b *Grid[Biome]) error {
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for i, bm := range b.Data {
		x, y := b.XY(i)
		c := bm.Attrs().Color
		if bm == BiomeRiver {
			c = biomeAttrTable[BiomeRiver].Color
		}
		img.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
	}
	return png.Encode(w, img)
}

// provinceColor derives a stable color from a hashed province id.
func provinceColor(id int) color.RGBA {
	h := splitmix64(uint64(id) * 0x9E3779B97F4A7C15)
	return color.RGBA{R: uint8(h), G: uint8(h >> 8), B: uint8(h >> 16), A: 255}
}

// ExportProvincesPNG colors cells per-province from a hashed id and draws
// 1-pixel black borders with draw2dimg, per spec.md §6.
func ExportProvincesPNG(w io.Writer, pixelToID *Grid[int32]) error {
	img := image.NewRGBA(image.Rect(0, 0, pixelToID.W, pixelToID.H))
	for i, id := range pixelToID.Data {
		x, y := pixelToID.XY(i)
		if id < 0 {
			continue
		}
		img.Set(x, y, provinceColor(int(id)))
	}

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(color.Black)
	gc.SetLineWidth(1)
	for y := 0; y < pixelToID.H; y++ {
		for x := 0; x < pixelToID.W; x++ {
			idx := pixelToID.Idx(x, y)
			id := pixelToID.Data[idx]
			for _, d := range [2][2]int{{1, 0}, {0, 1}} {
				nidx := pixelToID.Idx(x+d[0], y+d[1])
				if pixelToID.Data[nidx] != id {
					gc.MoveTo(float64(x), float64(y))
					gc.LineTo(float64(x+d[0]), float64(y+d[1]))
				}
			}
		}
	}
	gc.Stroke()

	return png.Encode(w, img)
}

// ExportRegionsPNG colors cells per-region.
func ExportRegionsPNG(w io.Writer, pixelToID *Grid[int32], provinces map[int]*Province, regions []Region) error {
	img := image.NewRGBA(image.Rect(0, 0, pixelToID.W, pixelToID.H))
	for i, id := range pixelToID.Data {
		if id < 0 {
			continue
		}
		pr := provinces[int(id)]
		if pr == nil {
			continue
		}
		x, y := pixelToID.XY(i)
		c := regions[pr.RegionID].Color
		img.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
	}
	return png.Encode(w, img)
}

// ExportNormalsPNG derives an RGB normal map from H via central differences
// (X-wrapped, Y-clamped), the original_source-supplemented feature from
// SPEC_FULL.md §4.
func ExportNormalsPNG(w io.Writer, h *Grid[float32]) error {
	img := image.NewRGBA(image.Rect(0, 0, h.W, h.H))
	const strength = 4.0
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			gx := (float64(h.At(x+1, y)) - float64(h.At(x-1, y))) / 2
			gy := (float64(h.At(x, y+1)) - float64(h.At(x, y-1))) / 2
			nx, ny, nz := -gx*strength, -gy*strength, 1.0
			l := math.Sqrt(nx*nx + ny*ny + nz*nz)
			nx, ny, nz = nx/l, ny/l, nz/l
			img.Set(x, y, color.RGBA{
				R: uint8((nx*0.5 + 0.5) * 255),
				G: uint8((ny*0.5 + 0.5) * 255),
				B: uint8((nz*0.5 + 0.5) * 255),
				A: 255,
			})
		}
	}
	return png.Encode(w, img)
}

// provinceJSON mirrors spec.md §6's provinces.json record shape.
type provinceJSON struct {
	ID      int                `json:"id"`
	Color   [3]uint8           `json:"color"`
	Center  [2]float64         `json:"center"`
	Area    int                `json:"area"`
	Type    string             `json:"type"`
	Coastal bool               `json:"coastal"`
	Biomes  map[string]float64 `json:"biomes"`
}

func provinceTypeString(t ProvinceType) string {
	switch t {
	case ProvinceOceanic:
		return "oceanic"
	case ProvinceLake:
		return "lake"
	default:
		return "continental"
	}
}

// provinceTypeFromString reverses provinceTypeString, for decoding.
func provinceTypeFromString(s string) ProvinceType {
	switch s {
	case "oceanic":
		return ProvinceOceanic
	case "lake":
		return ProvinceLake
	default:
		return ProvinceContinental
	}
}

// ExportProvincesJSON writes provinces.json per spec.md §6.
func ExportProvincesJSON(w io.Writer, provinces map[int]*Province) error {
	var ids []int
	for id := range provinces {
		ids = append(ids, id)
	}
	sortInts(ids)

	out := make([]provinceJSON, 0, len(ids))
	for _, id := range ids {
		pr := provinces[id]
		biomes := make(map[string]float64, len(pr.BiomeHist))
		for bm, frac := range pr.BiomeHist {
			biomes[bm.String()] = frac
		}
		c := provinceColor(pr.ID)
		out = append(out, provinceJSON{
			ID:      pr.ID,
			Color:   [3]uint8{c.R, c.G, c.B},
			Center:  [2]float64{pr.CenterX, pr.CenterY},
			Area:    pr.Area,
			Type:    provinceTypeString(pr.Type),
			Coastal: pr.Coastal,
			Biomes:  biomes,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// DecodeProvincesJSON reverses ExportProvincesJSON, reconstructing the
// ids/centers/biome histograms spec.md §8's round-trip property requires.
// Coastal and Area also round-trip, since they're stored plainly. Color is
// not kept on Province (it is derived from the id) and is ignored on decode;
// Neighbors/RegionID are not part of provinces.json and come back zeroed.
func DecodeProvincesJSON(r io.Reader) (map[int]*Province, error) {
	var in []provinceJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, err
	}
	out := make(map[int]*Province, len(in))
	for _, pj := range in {
		hist := make(map[Biome]float64, len(pj.Biomes))
		for name, frac := range pj.Biomes {
			bm, ok := biomeFromString(name)
			if !ok {
				return nil, &ConfigInvalidError{Field: "biomes", Reason: "unknown biome name " + name}
			}
			hist[bm] = frac
		}
		out[pj.ID] = &Province{
			ID:        pj.ID,
			CenterX:   pj.Center[0],
			CenterY:   pj.Center[1],
			Area:      pj.Area,
			Type:      provinceTypeFromString(pj.Type),
			Coastal:   pj.Coastal,
			BiomeHist: hist,
		}
	}
	return out, nil
}

type regionJSON struct {
	ID          int      `json:"id"`
	Color       [3]uint8 `json:"color"`
	ProvinceIDs []int    `json:"province_ids"`
}

// ExportRegionsJSON writes regions.json per spec.md §6.
func ExportRegionsJSON(w io.Writer, regions []Region) error {
	out := make([]regionJSON, 0, len(regions))
	for _, r := range regions {
		out = append(out, regionJSON{ID: r.ID, Color: r.Color, ProvinceIDs: r.ProvinceIDs})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportProvincesGeoJSON writes province centroids as a GeoJSON point
// feature collection, the supplemented export from SPEC_FULL.md §3/§4.
func ExportProvincesGeoJSON(w io.Writer, provinces map[int]*Province) error {
	fc := geojson.NewFeatureCollection()
	var ids []int
	for id := range provinces {
		ids = append(ids, id)
	}
	sortInts(ids)
	for _, id := range ids {
		pr := provinces[id]
		f := geojson.NewPointFeature([]float64{various.RoundToDecimals(pr.CenterX, 4), various.RoundToDecimals(pr.CenterY, 4)})
		f.SetProperty("id", pr.ID)
		f.SetProperty("area", pr.Area)
		f.SetProperty("type", provinceTypeString(pr.Type))
		f.SetProperty("coastal", pr.Coastal)
		fc.AddFeature(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
