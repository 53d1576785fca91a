package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a wrapper for opensimplex.Noise, initialized with a given seed,
// persistence (gain), lacunarity and number of octaves, evaluating fBm.
type Noise struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Amplitudes  []float64
	Frequencies []float64
	Seed        int64
	OS          opensimplex.Noise
}

// NewNoise returns a new Noise with lacunarity fixed at 2.0 (the teacher's
// original default).
func NewNoise(octaves int, persistence float64, seed int64) *Noise {
	return NewNoiseLacunarity(octaves, persistence, 2.0, seed)
}

// NewNoiseLacunarity returns a new Noise with an explicit lacunarity, the
// per-octave frequency multiplier.
func NewNoiseLacunarity(octaves int, persistence, lacunarity float64, seed int64) *Noise {
	n := &Noise{
		Octaves:     octaves,
		Persistence: persistence,
		Lacunarity:  lacunarity,
		Amplitudes:  make([]float64, octaves),
		Frequencies: make([]float64, octaves),
		Seed:        seed,
		OS:          opensimplex.NewNormalized(seed),
	}

	freq := 1.0
	for i := range n.Amplitudes {
		n.Amplitudes[i] = math.Pow(persistence, float64(i))
		n.Frequencies[i] = freq
		freq *= lacunarity
	}

	return n
}

// Eval3 returns the noise value at the given point.
func (n *Noise) Eval3(x, y, z float64) float64 {
	var sum, sumOfAmplitudes float64
	for octave := 0; octave < n.Octaves; octave++ {
		f := n.Frequencies[octave]
		sum += n.Amplitudes[octave] * n.OS.Eval3(x*f, y*f, z*f)
		sumOfAmplitudes += n.Amplitudes[octave]
	}
	return sum / sumOfAmplitudes
}

// Eval2 returns the noise value at the given point.
func (n *Noise) Eval2(x, y float64) float64 {
	var sum, sumOfAmplitudes float64
	for octave := 0; octave < n.Octaves; octave++ {
		f := n.Frequencies[octave]
		sum += n.Amplitudes[octave] * n.OS.Eval2(x*f, y*f)
		sumOfAmplitudes += n.Amplitudes[octave]
	}
	return sum / sumOfAmplitudes
}

// PlusOneOctave returns a new Noise with one more octave.
func (n *Noise) PlusOneOctave() *Noise {
	return NewNoiseLacunarity(n.Octaves+1, n.Persistence, n.Lacunarity, n.Seed)
}
