package main

import (
	"fmt"

	fribtrace "github.com/attpc/fribtrace_go/pkg"
)

func printConfiguration(config fribtrace.Configuration, logger fribtrace.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")

	frib := config.Frib
	logger.Info(fmt.Sprintf("Baseline window scale: %.1f", frib.BaselineWindowScale), "config")
	logger.Info(fmt.Sprintf("Baseline percentile: %.1f", frib.BaselinePercentile), "config")
	logger.Info(fmt.Sprintf("Peak separation: %.1f", frib.PeakSeparation), "config")
	logger.Info(fmt.Sprintf("Peak prominence: %.1f", frib.PeakProminence), "config")
	logger.Info(fmt.Sprintf("Peak max width: %.1f", frib.PeakMaxWidth), "config")
	logger.Info(fmt.Sprintf("Peak threshold: %.1f", frib.PeakThreshold), "config")
	logger.Info(fmt.Sprintf("IC delay time bucket: %.1f", frib.ICDelayTimeBucket), "config")
	logger.Info(fmt.Sprintf("IC multiplicity: %d", frib.ICMultiplicity), "config")
	logger.Info(fmt.Sprintf("Correct IC time: %t", frib.CorrectICTime), "config")
	logger.Info(fmt.Sprintf("FRIB frequency: %.2f", frib.FribFrequency), "config")
	logger.Info(fmt.Sprintf("IC column: %d, Si column: %d", frib.ICColumn, frib.SiColumn), "config")
}

func printDetectorParameters(params fribtrace.DetectorParameters, logger fribtrace.Logger) {
	logger.Info(fmt.Sprintf("GET frequency: %.3f", params.GetFrequency), "config")
	logger.Info(fmt.Sprintf("Max correction: %.1f", params.MaxCorrection), "config")
}
