package mapgen

import (
	"math"

	"github.com/Flokey82/go_gens/vectors"
)

// Wind holds per-cell wind direction as a unit 2-D vector. Not persisted in
// WorldArtifacts (spec.md §3 "Wind field ... Not persisted"), only consumed
// by the humidity pass.
type Wind struct {
	W, H int
	Dir  []vectors.Vec2
}

// generateWind builds the latitude-banded wind field of spec.md §4.4 from a
// sin(3*lat) weighting; bandWindVector documents where its zonal direction
// flips (at the equator and at +-60 degrees only). Grounded on the teacher's getGlobalWindVector, which
// used Hadley/mid-latitude/polar breakpoints at +-30/60 degrees; generalized
// here to a continuous 0..1 latitude fraction on the cylindrical grid.
func generateWind(w, h int) *Wind {
	wind := &Wind{W: w, H: h, Dir: make([]vectors.Vec2, w*h)}
	for y := 0; y < h; y++ {
		lat := math.Pi * (float64(y)/float64(h) - 0.5) // -pi/2 .. pi/2
		v := bandWindVector(lat)
		for x := 0; x < w; x++ {
			wind.Dir[y*w+x] = v
		}
	}
	return wind
}

// bandWindVector returns the unit wind vector at latitude lat (radians),
// blending the three bands with a sin(3*lat) weight as spec.md §4.4
// specifies.
func bandWindVector(lat float64) vectors.Vec2 {
	// Eastward(+x)/westward(-x) component is sin(3*lat). Its sign flips only
	// at the equator and at lat = +-pi/3 (60 degrees): the whole 0-60 degree
	// belt blows one way and the cap beyond 60 degrees the other, with the
	// two hemispheres opposite in sign. There is no sign change at 30 degrees
	// separating a trade belt from the westerlies.
	weight := math.Sin(3 * lat)
	x := weight
	// Meridional component pushes air poleward out of the trade belt.
	y := math.Sin(2*lat) * 0.3
	if x == 0 && y == 0 {
		return vectors.Vec2{X: 1, Y: 0}
	}
	return vectors.Normalize(vectors.Vec2{X: x, Y: y})
}

func (w *Wind) At(x, y int) vectors.Vec2 {
	xi := x % w.W
	if xi < 0 {
		xi += w.W
	}
	yi := y
	if yi < 0 {
		yi = 0
	}
	if yi >= w.H {
		yi = w.H - 1
	}
	return w.Dir[yi*w.W+xi]
}
