package main

import (
	"fmt"
	"io"

	fribtrace "github.com/attpc/fribtrace_go/pkg"
)

// FileReader walks the event range of a trace file honouring the skip and
// max events settings.
type FileReader struct {
	File      *fribtrace.TraceFile
	NextEvent int
	LastEvent int
	EvtCount  int
}

func NewFileReader(file *fribtrace.TraceFile, firstEvent int, lastEvent int) *FileReader {
	return &FileReader{File: file, NextEvent: firstEvent, LastEvent: lastEvent, EvtCount: -1}
}

// getNextEvent returns the next event of the range. Events without FRIB data
// come back with a nil matrix so they are still accounted for.
func (f *FileReader) getNextEvent() (WorkerData, error) {
	for {
		if f.NextEvent > f.LastEvent {
			return WorkerData{}, io.EOF
		}
		eventID := f.NextEvent
		f.NextEvent++

		f.EvtCount++
		if f.EvtCount >= configuration.MaxEvents {
			if VerbosityLevel > 0 {
				logger.Info("Max events reached", "fileReader")
			}
			return WorkerData{}, io.EOF
		}
		if f.EvtCount < configuration.Skip {
			if VerbosityLevel > 1 {
				message := fmt.Sprintf("Skipping event %d", eventID)
				logger.Info(message, "fileReader")
			}
			continue
		}

		data, found, err := f.File.ReadFribEvent(eventID)
		if err != nil {
			return WorkerData{EventID: eventID}, err
		}
		if !found && VerbosityLevel > 1 {
			message := fmt.Sprintf("Event %d has no FRIB data", eventID)
			logger.Info(message, "fileReader")
		}
		if VerbosityLevel > 2 {
			message := fmt.Sprintf("Reading event %d", eventID)
			logger.Info(message, "fileReader")
		}
		return WorkerData{EventID: eventID, Data: data}, nil
	}
}
