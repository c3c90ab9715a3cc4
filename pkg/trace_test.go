package fribtrace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceShape(t *testing.T) {
	for _, length := range []int{0, 100, TraceLength - 1, TraceLength + 1} {
		trace, err := NewTrace(make([]float64, length), testParameters())
		assert.Nil(t, trace)
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, length, shapeErr.Got)
		assert.Equal(t, TraceLength, shapeErr.Want)
	}
}

func TestNewTraceWithoutPulses(t *testing.T) {
	params := testParameters()

	t.Run("flat", func(t *testing.T) {
		trace, err := NewTrace(flatTrace(120), params)
		require.NoError(t, err)
		assert.Empty(t, trace.Peaks())
		assert.Equal(t, 0, trace.NumPeaks())
	})

	t.Run("noise below threshold", func(t *testing.T) {
		for seed := int64(1); seed <= 5; seed++ {
			trace, err := NewTrace(noisyTrace(50, 5, seed), params)
			require.NoError(t, err)
			assert.Empty(t, trace.Peaks(), "seed %d", seed)
		}
	})
}

func TestNewTraceSinglePulse(t *testing.T) {
	params := testParameters()

	t.Run("flat baseline", func(t *testing.T) {
		raw := addPulses(flatTrace(0), pulse{centroid: 1200, amplitude: 300, sigma: 4})
		trace, err := NewTrace(raw, params)
		require.NoError(t, err)

		peaks := trace.Peaks()
		require.Len(t, peaks, 1)
		assert.InDelta(t, 1200.0, peaks[0].Centroid, 0.5)
		assert.InDelta(t, 300.0, peaks[0].Amplitude, 1.0)
	})

	t.Run("offset and noise", func(t *testing.T) {
		raw := addPulses(noisyTrace(400, 2, 11), pulse{centroid: 733, amplitude: 300, sigma: 4})
		trace, err := NewTrace(raw, params)
		require.NoError(t, err)

		peaks := trace.Peaks()
		require.Len(t, peaks, 1)
		assert.InDelta(t, 733.0, peaks[0].Centroid, 0.5)
		assert.InDelta(t, 300.0, peaks[0].Amplitude, 8.0)
		assert.InDelta(t, 700.0, peaks[0].UncorrectedAmplitude, 8.0)
	})

	t.Run("drifting baseline", func(t *testing.T) {
		raw := make([]float64, TraceLength)
		for i := range raw {
			raw[i] = 200 + 0.05*float64(i)
		}
		addPulses(raw, pulse{centroid: 1500, amplitude: 250, sigma: 5})
		trace, err := NewTrace(raw, params)
		require.NoError(t, err)

		peaks := trace.Peaks()
		require.Len(t, peaks, 1)
		assert.InDelta(t, 1500.0, peaks[0].Centroid, 0.5)
		assert.InDelta(t, 250.0, peaks[0].Amplitude, 5.0)
	})
}

func TestNewTraceWidePulse(t *testing.T) {
	params := testParameters()

	for _, sigma := range []float64{25, 40} {
		t.Run(fmt.Sprintf("sigma %.0f", sigma), func(t *testing.T) {
			for _, centroid := range []float64{1100, 1170, 1200, 1233, 1300} {
				raw := addPulses(flatTrace(0), pulse{centroid: centroid, amplitude: 300, sigma: sigma})
				trace, err := NewTrace(raw, params)
				require.NoError(t, err)

				peaks := trace.Peaks()
				require.Len(t, peaks, 1, "centroid %.0f", centroid)
				assert.InDelta(t, centroid, peaks[0].Centroid, 0.5, "centroid %.0f", centroid)
				assert.InDelta(t, 300.0, peaks[0].Amplitude, 1.0, "centroid %.0f", centroid)
			}
		})
	}

	t.Run("noisy offset", func(t *testing.T) {
		raw := addPulses(noisyTrace(100, 2, 5), pulse{centroid: 1200, amplitude: 300, sigma: 40})
		trace, err := NewTrace(raw, params)
		require.NoError(t, err)

		peaks := trace.Peaks()
		require.Len(t, peaks, 1)
		assert.InDelta(t, 1200.0, peaks[0].Centroid, 1.0)
		assert.InDelta(t, 300.0, peaks[0].Amplitude, 5.0)
	})
}

func TestTracePeaksOrdered(t *testing.T) {
	raw := addPulses(noisyTrace(30, 2, 3),
		pulse{centroid: 1800, amplitude: 500, sigma: 4},
		pulse{centroid: 250, amplitude: 180, sigma: 3},
		pulse{centroid: 1010, amplitude: 320, sigma: 5},
		pulse{centroid: 1030, amplitude: 150, sigma: 4},
		pulse{centroid: 640, amplitude: 260, sigma: 4})
	trace, err := NewTrace(raw, testParameters())
	require.NoError(t, err)

	peaks := trace.Peaks()
	require.Len(t, peaks, 4)
	for i := 1; i < len(peaks); i++ {
		assert.Less(t, peaks[i-1].Centroid, peaks[i].Centroid)
	}
	for _, peak := range peaks {
		assert.GreaterOrEqual(t, peak.Amplitude, testParameters().PeakThreshold)
		assert.GreaterOrEqual(t, peak.Centroid, 0.0)
		assert.Less(t, peak.Centroid, float64(TraceLength))
	}
}

func TestTraceDeterministic(t *testing.T) {
	raw := addPulses(noisyTrace(80, 4, 99),
		pulse{centroid: 1150, amplitude: 280, sigma: 4},
		pulse{centroid: 1420, amplitude: 190, sigma: 6})

	first, err := NewTrace(raw, testParameters())
	require.NoError(t, err)
	second, err := NewTrace(raw, testParameters())
	require.NoError(t, err)

	assert.Equal(t, first.Peaks(), second.Peaks())
	assert.Equal(t, first.CorrectedSamples(), second.CorrectedSamples())
}

func TestTraceIsImmutable(t *testing.T) {
	raw := addPulses(flatTrace(0), pulse{centroid: 1200, amplitude: 300, sigma: 4})
	trace, err := NewTrace(raw, testParameters())
	require.NoError(t, err)

	raw[1200] = -1000
	peaks := trace.Peaks()
	peaks[0].Centroid = 3
	corrected := trace.CorrectedSamples()
	corrected[1200] = 0

	assert.InDelta(t, 300.0, trace.RawSamples()[1200], 1e-9)
	assert.InDelta(t, 1200.0, trace.Peaks()[0].Centroid, 0.5)
	assert.InDelta(t, 300.0, trace.CorrectedSamples()[1200], 1e-9)
	assert.Len(t, trace.Baseline(), TraceLength)
}
