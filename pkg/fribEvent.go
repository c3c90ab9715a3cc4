package fribtrace

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FribEvent holds the ion chamber and silicon traces recorded by the FRIBDAQ
// digitizer for one AT-TPC event. The selections below are recomputed from
// the peak lists on every call; they hold no state.
type FribEvent struct {
	eventID      int
	ionTrace     *Trace
	siliconTrace *Trace
}

// NewFribEvent extracts the IC and Si columns of a TraceLength x N matrix.
func NewFribEvent(raw *mat.Dense, eventID int, params FribParameters) (*FribEvent, error) {
	if raw == nil {
		return nil, &ShapeError{What: "trace length", Got: 0, Want: TraceLength}
	}
	rows, cols := raw.Dims()
	if rows != TraceLength {
		return nil, &ShapeError{What: "trace length", Got: rows, Want: TraceLength}
	}
	needed := max(params.ICColumn, params.SiColumn) + 1
	if cols < needed {
		return nil, &ShapeError{What: "number of channels", Got: cols, Want: needed}
	}

	ionTrace, err := NewTrace(mat.Col(nil, params.ICColumn, raw), params)
	if err != nil {
		return nil, err
	}
	siliconTrace, err := NewTrace(mat.Col(nil, params.SiColumn, raw), params)
	if err != nil {
		return nil, err
	}
	return &FribEvent{
		eventID:      eventID,
		ionTrace:     ionTrace,
		siliconTrace: siliconTrace,
	}, nil
}

func (e *FribEvent) EventID() int {
	return e.eventID
}

func (e *FribEvent) IonTrace() *Trace {
	return e.ionTrace
}

func (e *FribEvent) SiliconTrace() *Trace {
	return e.siliconTrace
}

// TriggerPeak returns the first IC peak at or after the IC delay. The IC
// signal is delayed before it enters the trigger, so that pulse is the one
// that fired the event.
func (e *FribEvent) TriggerPeak(params FribParameters) (Peak, bool) {
	for _, peak := range e.ionTrace.peaks {
		if peak.Centroid >= params.ICDelayTimeBucket {
			return peak, true
		}
	}
	return Peak{}, false
}

// ICMultiplicity counts the IC peaks at or after the IC delay.
func (e *FribEvent) ICMultiplicity(params FribParameters) int {
	mult := 0
	for _, peak := range e.ionTrace.peaks {
		if peak.Centroid >= params.ICDelayTimeBucket {
			mult++
		}
	}
	return mult
}

// isVetoed reports whether a silicon peak lies closer than the peak
// separation to the given IC centroid.
func (e *FribEvent) isVetoed(centroid float64, params FribParameters) bool {
	for _, si := range e.siliconTrace.peaks {
		if math.Abs(si.Centroid-centroid) < params.PeakSeparation {
			return true
		}
	}
	return false
}

// goodPeakCandidates returns the unvetoed IC peaks at or after the trigger,
// ordered by centroid. The boolean is false when there is no trigger.
func (e *FribEvent) goodPeakCandidates(params FribParameters) ([]Peak, bool) {
	trigger, found := e.TriggerPeak(params)
	if !found {
		return nil, false
	}
	candidates := make([]Peak, 0)
	for _, peak := range e.ionTrace.peaks {
		if peak.Centroid < trigger.Centroid {
			continue
		}
		if e.isVetoed(peak.Centroid, params) {
			continue
		}
		candidates = append(candidates, peak)
	}
	return candidates, true
}

// GoodPeak returns the earliest IC peak not in coincidence with the silicon
// and not before the trigger, with the number of such peaks. Events with no
// candidate or more than ICMultiplicity candidates have no good peak.
func (e *FribEvent) GoodPeak(params FribParameters) (GoodPeak, bool) {
	candidates, found := e.goodPeakCandidates(params)
	if !found || len(candidates) == 0 || len(candidates) > params.ICMultiplicity {
		return GoodPeak{}, false
	}
	return GoodPeak{Multiplicity: len(candidates), Peak: candidates[0]}, true
}

// CorrectICTime converts the distance between the good peak and the trigger
// peak into main detector time buckets. It is zero when the correction is
// disabled and ErrNoTriggerPeak when the event has no trigger.
func (e *FribEvent) CorrectICTime(good Peak, params FribParameters, getFrequency float64) (float64, error) {
	if !params.CorrectICTime {
		return 0.0, nil
	}
	trigger, found := e.TriggerPeak(params)
	if !found {
		return 0.0, ErrNoTriggerPeak
	}
	return (good.Centroid - trigger.Centroid) * (params.FribFrequency / getFrequency), nil
}
