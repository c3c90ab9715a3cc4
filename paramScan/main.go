package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	fribtrace "github.com/attpc/fribtrace_go/pkg"
	"gonum.org/v1/gonum/mat"
)

var logger fribtrace.SlogLogger

func init() {
	logger = fribtrace.NewSlogLogger(os.Stdout, os.Stderr, slog.LevelDebug)
}

type fribData struct {
	EventID int
	Data    *mat.Dense
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	configuration, err := fribtrace.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	fribtrace.SetLogger(logger)

	detector, err := fribtrace.DetectorParametersForRun(configuration)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	events, err := loadEvents(configuration)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("Loaded %d events with FRIB data", len(events)), "main")

	for _, threshold := range configuration.ScanThresholds {
		params := configuration.Frib
		params.PeakThreshold = threshold
		if err := params.Validate(); err != nil {
			logger.Error(fmt.Sprintf("skipping threshold %.1f: %v", threshold, err))
			continue
		}

		start := time.Now()
		summary := scanThreshold(events, params, detector)
		duration := time.Since(start)
		fmt.Printf("(threshold %.1f) Time: %d ms, accepted %d of %d\n",
			threshold, duration.Milliseconds(), summary.Accepted(), summary.Total())
		for _, line := range summary.Lines() {
			fmt.Printf("\t%s\n", line)
		}
	}
}

func loadEvents(configuration fribtrace.Configuration) ([]fribData, error) {
	traceFile, err := fribtrace.OpenTraceFile(configuration.FileIn)
	if err != nil {
		return nil, err
	}
	defer traceFile.Close()

	minEvent, maxEvent, err := traceFile.EventRange()
	if err != nil {
		return nil, fmt.Errorf("error reading event range: %w", err)
	}

	events := make([]fribData, 0)
	evtCount := 0
	for eventID := minEvent; eventID <= maxEvent; eventID++ {
		if evtCount >= configuration.MaxEvents {
			break
		}
		evtCount++
		if evtCount <= configuration.Skip {
			continue
		}
		data, found, err := traceFile.ReadFribEvent(eventID)
		if err != nil {
			logger.Error(fmt.Errorf("error reading event %d: %w", eventID, err).Error())
			continue
		}
		if !found {
			continue
		}
		events = append(events, fribData{EventID: eventID, Data: data})
	}
	return events, nil
}

func scanThreshold(events []fribData, params fribtrace.FribParameters,
	detector fribtrace.DetectorParameters) *fribtrace.RunSummary {
	summary := fribtrace.NewRunSummary()
	for _, event := range events {
		result, err := fribtrace.AnalyzeEvent(event.Data, event.EventID, params, detector)
		if err != nil {
			logger.Error(err.Error())
		}
		summary.Add(result)
	}
	return summary
}
