package main

import (
	"fmt"
	"io"
	"sync"

	fribtrace "github.com/attpc/fribtrace_go/pkg"
	"gonum.org/v1/gonum/mat"
)

// WorkerData carries one event to a worker. Err is set when its FRIB data
// could not be read.
type WorkerData struct {
	EventID int
	Data    *mat.Dense
	Err     error
}

func worker(id int, jobs <-chan WorkerData, results chan<- fribtrace.ICResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		if VerbosityLevel > 2 {
			message := fmt.Sprintf("Worker %d processing event %d", id, job.EventID)
			logger.Info(message, "worker")
		}
		results <- processEvent(job)
	}
}

func processEvent(job WorkerData) (result fribtrace.ICResult) {
	result = fribtrace.NewICResult(job.EventID)
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("recovered from panic on event %d: %v", job.EventID, r)
			logger.Error(errMessage.Error())
			result = fribtrace.NewICResult(job.EventID)
		}
	}()

	if job.Err != nil {
		return fribtrace.FailedResult(job.EventID, job.Err)
	}

	var err error
	result, err = fribtrace.AnalyzeEvent(job.Data, job.EventID, configuration.Frib, detectorParams)
	if err != nil {
		logger.Error(err.Error())
	}
	return result
}

// sendEventsToWorkers is the only goroutine touching the input file.
func sendEventsToWorkers(fileReader *FileReader, jobs chan<- WorkerData) {
	defer close(jobs)
	for {
		job, err := fileReader.getNextEvent()
		if err == io.EOF {
			return
		}
		if err != nil {
			errMessage := fmt.Errorf("error reading event %d: %w", job.EventID, err)
			logger.Error(errMessage.Error())
			job.Err = err
		}
		jobs <- job
	}
}

func startWorkers(nWorkers int, jobs <-chan WorkerData, results chan<- fribtrace.ICResult) {
	var wg sync.WaitGroup
	for w := 1; w <= nWorkers; w++ {
		wg.Add(1)
		go worker(w, jobs, results, &wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()
}
