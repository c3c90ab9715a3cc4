package main

import (
	"errors"
	"testing"

	fribtrace "github.com/attpc/fribtrace_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func setupWorkers(t *testing.T) {
	t.Helper()
	configuration = fribtrace.Configuration{NumWorkers: 2, Frib: fribtrace.DefaultFribParameters()}
	detectorParams = fribtrace.DefaultDetectorParameters()
	VerbosityLevel = 0
}

func TestProcessEventReadFailure(t *testing.T) {
	setupWorkers(t)

	result := processEvent(WorkerData{EventID: 4, Err: &fribtrace.ShapeError{What: "rank", Got: 1, Want: 2}})
	assert.Equal(t, 4, result.EventID)
	assert.Equal(t, fribtrace.StatusShapeError, result.Status)

	result = processEvent(WorkerData{EventID: 5, Err: errors.New("broken dataset")})
	assert.Equal(t, fribtrace.StatusError, result.Status)
}

func TestWorkersReportEveryEvent(t *testing.T) {
	setupWorkers(t)

	jobs := make(chan WorkerData, 10)
	results := make(chan fribtrace.ICResult, 10)
	startWorkers(configuration.NumWorkers, jobs, results)

	jobs <- WorkerData{EventID: 1}
	jobs <- WorkerData{EventID: 2, Err: errors.New("broken dataset")}
	jobs <- WorkerData{EventID: 3, Data: mat.NewDense(10, 3, nil)}
	close(jobs)

	summary := fribtrace.NewRunSummary()
	for result := range results {
		summary.Add(result)
	}
	require.Equal(t, 3, summary.Total())
	assert.Equal(t, 1, summary.Counts[fribtrace.StatusNoFribData])
	assert.Equal(t, 1, summary.Counts[fribtrace.StatusError])
	assert.Equal(t, 1, summary.Counts[fribtrace.StatusShapeError])
}
