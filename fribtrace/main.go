package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	fribtrace "github.com/attpc/fribtrace_go/pkg"
	"golang.org/x/exp/slices"
)

var configuration fribtrace.Configuration
var detectorParams fribtrace.DetectorParameters

var (
	logger         fribtrace.SlogLogger
	VerbosityLevel int
)

func init() {
	logger = fribtrace.NewSlogLogger(os.Stdout, os.Stderr, slog.LevelDebug)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = fribtrace.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	fribtrace.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	detectorParams, err = fribtrace.DetectorParametersForRun(configuration)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if VerbosityLevel > 0 {
		printDetectorParameters(detectorParams, logger)
	}

	traceFile, err := fribtrace.OpenTraceFile(configuration.FileIn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer traceFile.Close()

	minEvent, maxEvent, err := traceFile.EventRange()
	if err != nil {
		message := fmt.Errorf("error reading event range: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Events %d to %d", minEvent, maxEvent)
		logger.Info(message, "main")
	}

	start := time.Now()
	jobs := make(chan WorkerData, 100)
	results := make(chan fribtrace.ICResult, 100)

	startWorkers(configuration.NumWorkers, jobs, results)
	go sendEventsToWorkers(NewFileReader(traceFile, minEvent, maxEvent), jobs)

	summary := fribtrace.NewRunSummary()
	analysed := make([]fribtrace.ICResult, 0, maxEvent-minEvent+1)
	for result := range results {
		summary.Add(result)
		analysed = append(analysed, result)
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Processed event %d: %s", result.EventID, result.Status)
			logger.Info(message, "main")
		}
	}
	slices.SortFunc(analysed, func(a, b fribtrace.ICResult) int {
		return a.EventID - b.EventID
	})

	if configuration.WriteData {
		if err := writeResults(analysed, minEvent, maxEvent); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	summary.Report("main")
	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
}

func writeResults(analysed []fribtrace.ICResult, minEvent int, maxEvent int) error {
	writer, err := fribtrace.NewWriter(configuration.FileOut, configuration.CompressionLevel)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteRunInfo(configuration.RunNumber, minEvent, maxEvent); err != nil {
		return fmt.Errorf("error writing run info: %w", err)
	}
	for _, result := range analysed {
		if result.Status == fribtrace.StatusNoFribData {
			continue
		}
		if err := writer.WriteResult(result); err != nil {
			return err
		}
	}
	return nil
}
