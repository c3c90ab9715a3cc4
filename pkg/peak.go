package fribtrace

// Peak is a pulse found in a baseline corrected trace. Positions are in
// FRIB time buckets.
type Peak struct {
	Centroid             float64
	Amplitude            float64
	UncorrectedAmplitude float64
	// Interpolated crossings of the width height on the rising and
	// falling edges.
	PositiveInflection float64
	NegativeInflection float64
	Integral           float64
}

// Width is the distance between the two inflection points.
func (p Peak) Width() float64 {
	return p.NegativeInflection - p.PositiveInflection
}

// GoodPeak is the IC peak of the beam species of interest together with the
// number of candidates it was chosen from.
type GoodPeak struct {
	Multiplicity int
	Peak         Peak
}
