package fribtrace

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// EventStatus is the terminal state reached by the analysis of one event.
type EventStatus int

const (
	StatusError EventStatus = iota
	StatusNoFribData
	StatusShapeError
	StatusTriggerMissing
	StatusGoodPeakMissing
	StatusMultiplicityExceeded
	// Correction disabled: the triggering peak was recorded.
	StatusTriggerFound
	StatusTimeCorrected
)

func (s EventStatus) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusNoFribData:
		return "no FRIB data"
	case StatusShapeError:
		return "shape error"
	case StatusTriggerMissing:
		return "trigger missing"
	case StatusGoodPeakMissing:
		return "good peak missing"
	case StatusMultiplicityExceeded:
		return "multiplicity exceeded"
	case StatusTriggerFound:
		return "trigger found"
	case StatusTimeCorrected:
		return "time corrected"
	default:
		return "unknown"
	}
}

// Accepted reports whether the event carries IC information downstream.
func (s EventStatus) Accepted() bool {
	return s == StatusTriggerFound || s == StatusTimeCorrected
}

// ICResult is what the point cloud phase needs from the FRIB data of one
// event. Unresolved quantities keep the value -1.
type ICResult struct {
	EventID         int
	Status          EventStatus
	Amplitude       float64
	Integral        float64
	Centroid        float64
	Multiplicity    int
	TriggerCentroid float64
	// Correction is the computed IC time correction in GET time buckets.
	// AppliedCorrection is the same value when it fits in the GET window,
	// zero otherwise.
	Correction        float64
	AppliedCorrection float64
}

func NewICResult(eventID int) ICResult {
	return ICResult{
		EventID:         eventID,
		Status:          StatusError,
		Amplitude:       -1.0,
		Integral:        -1.0,
		Centroid:        -1.0,
		Multiplicity:    -1,
		TriggerCentroid: -1.0,
	}
}

func (r *ICResult) setPeak(peak Peak, multiplicity int) {
	r.Amplitude = peak.Amplitude
	r.Integral = peak.Integral
	r.Centroid = peak.Centroid
	r.Multiplicity = multiplicity
}

// FailedResult is the result of an event whose FRIB data could not be read
// or does not have the digitizer layout. It keeps the event in the run
// counts.
func FailedResult(eventID int, err error) ICResult {
	result := NewICResult(eventID)
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		result.Status = StatusShapeError
	}
	return result
}

// AnalyzeEvent runs the whole IC procedure on the raw FRIB matrix of one
// event. Only malformed input returns an error; events without a usable IC
// peak come back with the corresponding status.
func AnalyzeEvent(raw *mat.Dense, eventID int, params FribParameters, detector DetectorParameters) (ICResult, error) {
	result := NewICResult(eventID)
	if raw == nil {
		result.Status = StatusNoFribData
		return result, nil
	}

	event, err := NewFribEvent(raw, eventID, params)
	if err != nil {
		return FailedResult(eventID, err), fmt.Errorf("event %d: %w", eventID, err)
	}

	if !params.CorrectICTime {
		trigger, found := event.TriggerPeak(params)
		if !found {
			result.Status = StatusTriggerMissing
			return result, nil
		}
		result.TriggerCentroid = trigger.Centroid
		mult := event.ICMultiplicity(params)
		if mult > params.ICMultiplicity {
			result.Status = StatusMultiplicityExceeded
			return result, nil
		}
		result.setPeak(trigger, mult)
		result.Status = StatusTriggerFound
		return result, nil
	}

	candidates, found := event.goodPeakCandidates(params)
	if !found {
		result.Status = StatusTriggerMissing
		return result, nil
	}
	trigger, _ := event.TriggerPeak(params)
	result.TriggerCentroid = trigger.Centroid

	switch {
	case len(candidates) == 0:
		result.Status = StatusGoodPeakMissing
		return result, nil
	case len(candidates) > params.ICMultiplicity:
		result.Status = StatusMultiplicityExceeded
		return result, nil
	}

	good := GoodPeak{Multiplicity: len(candidates), Peak: candidates[0]}
	result.setPeak(good.Peak, good.Multiplicity)

	correction, err := event.CorrectICTime(good.Peak, params, detector.GetFrequency)
	if err != nil {
		return result, fmt.Errorf("event %d: %w", eventID, err)
	}
	result.Correction = correction
	if correction < detector.MaxCorrection {
		result.AppliedCorrection = correction
	}
	result.Status = StatusTimeCorrected
	return result, nil
}

// RunSummary counts the analysed events per terminal state.
type RunSummary struct {
	Counts map[EventStatus]int
}

func NewRunSummary() *RunSummary {
	return &RunSummary{Counts: make(map[EventStatus]int)}
}

func (s *RunSummary) Add(result ICResult) {
	s.Counts[result.Status]++
}

func (s *RunSummary) Total() int {
	total := 0
	for _, count := range s.Counts {
		total += count
	}
	return total
}

func (s *RunSummary) Accepted() int {
	return s.Counts[StatusTriggerFound] + s.Counts[StatusTimeCorrected]
}

// Lines returns one "status: count" line per state seen, in state order.
func (s *RunSummary) Lines() []string {
	statuses := make([]EventStatus, 0, len(s.Counts))
	for status := range s.Counts {
		statuses = append(statuses, status)
	}
	slices.Sort(statuses)
	lines := make([]string, 0, len(statuses))
	for _, status := range statuses {
		lines = append(lines, fmt.Sprintf("%s: %d", status, s.Counts[status]))
	}
	return lines
}

func (s *RunSummary) Report(module string) {
	for _, line := range s.Lines() {
		logger.Info(line, module)
	}
	logger.Info(fmt.Sprintf("Accepted %d of %d events", s.Accepted(), s.Total()), module)
}
