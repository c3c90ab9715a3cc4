package fribtrace

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := NewSlogLogger(&stdout, &stderr, slog.LevelInfo)

	l.Info("Processing event 12", "worker")
	assert.Regexp(t, `^\[\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\] \[worker\] Processing event 12\n$`, stdout.String())
	assert.Empty(t, stderr.String())

	l.Error("cannot open file")
	assert.Contains(t, stderr.String(), `"msg":"cannot open file"`)
	assert.Contains(t, stderr.String(), `"level":"ERROR"`)
}

func TestHandlerLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := NewSlogLogger(&stdout, &stderr, slog.LevelError)
	l.Info("hidden", "main")
	assert.Empty(t, stdout.String())
}

func TestSetLogger(t *testing.T) {
	var stdout, stderr bytes.Buffer
	SetLogger(NewSlogLogger(&stdout, &stderr, slog.LevelInfo))
	defer SetLogger(nil)

	summary := NewRunSummary()
	summary.Add(ICResult{Status: StatusTimeCorrected})
	summary.Report("summary")
	assert.Contains(t, stdout.String(), "[summary] time corrected: 1")
	assert.Contains(t, stdout.String(), "[summary] Accepted 1 of 1 events")

	SetLogger(nil)
	stdout.Reset()
	summary.Report("summary")
	assert.Empty(t, stdout.String())
}
