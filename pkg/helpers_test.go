package fribtrace

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

type pulse struct {
	centroid  float64
	amplitude float64
	sigma     float64
}

func flatTrace(level float64) []float64 {
	samples := make([]float64, TraceLength)
	for i := range samples {
		samples[i] = level
	}
	return samples
}

func addPulses(samples []float64, pulses ...pulse) []float64 {
	for _, p := range pulses {
		for i := range samples {
			d := float64(i) - p.centroid
			samples[i] += p.amplitude * math.Exp(-d*d/(2*p.sigma*p.sigma))
		}
	}
	return samples
}

func noisyTrace(level float64, spread float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, TraceLength)
	for i := range samples {
		samples[i] = level + spread*(2*rng.Float64()-1)
	}
	return samples
}

// eventMatrix builds a TraceLength x 3 matrix with the IC trace in column 0
// and the Si trace in column 2, the default layout.
func eventMatrix(ic []float64, si []float64) *mat.Dense {
	raw := mat.NewDense(TraceLength, 3, nil)
	raw.SetCol(0, ic)
	raw.SetCol(1, flatTrace(0))
	raw.SetCol(2, si)
	return raw
}

func testParameters() FribParameters {
	return DefaultFribParameters()
}
