package fribtrace

// Trace is one FRIBDAQ channel of an event. Baseline removal and peak search
// run once in NewTrace; a Trace never changes afterwards.
type Trace struct {
	raw       []float64
	baseline  []float64
	corrected []float64
	peaks     []Peak
}

// NewTrace builds a Trace from TraceLength raw samples. The parameters are
// expected to have passed Validate.
func NewTrace(raw []float64, params FribParameters) (*Trace, error) {
	if len(raw) != TraceLength {
		return nil, &ShapeError{What: "trace length", Got: len(raw), Want: TraceLength}
	}

	samples := make([]float64, len(raw))
	copy(samples, raw)

	corrected, baseline := removeBaseline(samples, params.BaselineWindowScale, params.BaselinePercentile)
	return &Trace{
		raw:       samples,
		baseline:  baseline,
		corrected: corrected,
		peaks:     findPeaks(corrected, samples, params),
	}, nil
}

func (t *Trace) RawSamples() []float64 {
	return cloneSamples(t.raw)
}

func (t *Trace) Baseline() []float64 {
	return cloneSamples(t.baseline)
}

func (t *Trace) CorrectedSamples() []float64 {
	return cloneSamples(t.corrected)
}

// Peaks returns the detected peaks sorted by centroid.
func (t *Trace) Peaks() []Peak {
	peaks := make([]Peak, len(t.peaks))
	copy(peaks, t.peaks)
	return peaks
}

func (t *Trace) NumPeaks() int {
	return len(t.peaks)
}

func cloneSamples(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}
