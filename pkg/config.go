package fribtrace

import (
	"encoding/json"
	"os"
)

// TraceLength is the number of samples recorded per channel by the SIS3300
// digitizer of the FRIBDAQ stack.
const TraceLength = 2048

// FribModuleID is the digitizer module holding the ion chamber and silicon
// channels. It is part of the dataset name of every FRIB event.
const FribModuleID = 1903

// FribParameters configures the analysis of the auxiliary FRIBDAQ traces.
// It is validated once with Validate and then shared read-only by every
// worker.
type FribParameters struct {
	BaselineWindowScale float64 `json:"baseline_window_scale"`
	BaselinePercentile  float64 `json:"baseline_percentile"`
	PeakSeparation      float64 `json:"peak_separation"`
	PeakProminence      float64 `json:"peak_prominence"`
	PeakMaxWidth        float64 `json:"peak_max_width"`
	PeakThreshold       float64 `json:"peak_threshold"`
	ICDelayTimeBucket   float64 `json:"ic_delay_time_bucket"`
	ICMultiplicity      int     `json:"ic_multiplicity"`
	CorrectICTime       bool    `json:"correct_ic_time"`
	FribFrequency       float64 `json:"frib_frequency"`
	ICColumn            int     `json:"ic_column"`
	SiColumn            int     `json:"si_column"`
}

// DetectorParameters holds the main detector (GET) properties the IC time
// correction depends on. They come from the run catalogue unless the
// database is disabled.
type DetectorParameters struct {
	GetFrequency  float64 `json:"get_frequency" db:"GetFrequency"`
	MaxCorrection float64 `json:"max_correction" db:"MaxCorrection"`
}

func DefaultFribParameters() FribParameters {
	return FribParameters{
		BaselineWindowScale: 100.0,
		BaselinePercentile:  10.0,
		PeakSeparation:      50.0,
		PeakProminence:      20.0,
		PeakMaxWidth:        500.0,
		PeakThreshold:       100.0,
		ICDelayTimeBucket:   1100.0,
		ICMultiplicity:      1,
		CorrectICTime:       true,
		FribFrequency:       100.0,
		ICColumn:            0,
		SiColumn:            2,
	}
}

func DefaultDetectorParameters() DetectorParameters {
	return DetectorParameters{
		GetFrequency:  6.25,
		MaxCorrection: 512.0,
	}
}

// Validate checks the parameters before any event is processed.
func (p FribParameters) Validate() error {
	switch {
	case p.BaselineWindowScale < 1:
		return &ConfigError{Field: "baseline_window_scale", Reason: "must be at least one sample"}
	case p.BaselinePercentile < 0 || p.BaselinePercentile > 100:
		return &ConfigError{Field: "baseline_percentile", Reason: "must be between 0 and 100"}
	case p.PeakSeparation <= 0:
		return &ConfigError{Field: "peak_separation", Reason: "must be positive"}
	case p.PeakProminence <= 0:
		return &ConfigError{Field: "peak_prominence", Reason: "must be positive"}
	case p.PeakMaxWidth <= 0:
		return &ConfigError{Field: "peak_max_width", Reason: "must be positive"}
	case p.PeakThreshold <= 0:
		return &ConfigError{Field: "peak_threshold", Reason: "must be positive"}
	case p.ICDelayTimeBucket < 0 || p.ICDelayTimeBucket >= TraceLength:
		return &ConfigError{Field: "ic_delay_time_bucket", Reason: "must be inside the trace"}
	case p.ICMultiplicity < 1:
		return &ConfigError{Field: "ic_multiplicity", Reason: "must be at least 1"}
	case p.FribFrequency <= 0:
		return &ConfigError{Field: "frib_frequency", Reason: "must be positive"}
	case p.ICColumn < 0 || p.SiColumn < 0:
		return &ConfigError{Field: "ic_column/si_column", Reason: "must not be negative"}
	case p.ICColumn == p.SiColumn:
		return &ConfigError{Field: "ic_column/si_column", Reason: "must be different channels"}
	}
	return nil
}

func (p DetectorParameters) Validate() error {
	if p.GetFrequency <= 0 {
		return &ConfigError{Field: "get_frequency", Reason: "must be positive"}
	}
	if p.MaxCorrection <= 0 {
		return &ConfigError{Field: "max_correction", Reason: "must be positive"}
	}
	return nil
}

// Configuration is the content of the JSON file given to the executables.
type Configuration struct {
	FileIn           string             `json:"file_in"`
	FileOut          string             `json:"file_out"`
	RunNumber        int                `json:"run_number"`
	MaxEvents        int                `json:"max_events"`
	Skip             int                `json:"skip"`
	Verbosity        int                `json:"verbosity"`
	NumWorkers       int                `json:"num_workers"`
	WriteData        bool               `json:"write_data"`
	CompressionLevel int                `json:"compression_level"`
	NoDB             bool               `json:"no_db"`
	Host             string             `json:"host"`
	User             string             `json:"user"`
	Passwd           string             `json:"pass"`
	DBName           string             `json:"dbname"`
	Frib             FribParameters     `json:"frib"`
	Detector         DetectorParameters `json:"detector"`
	ScanThresholds   []float64          `json:"scan_thresholds"`
}

func LoadConfiguration(filename string) (Configuration, error) {
	var config Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.NumWorkers = 1
	config.WriteData = true
	config.CompressionLevel = 4
	config.NoDB = false
	config.Host = "localhost"
	config.User = "attpcreader"
	config.Passwd = "readonly"
	config.DBName = "ATTPC"
	config.Frib = DefaultFribParameters()
	config.Detector = DefaultDetectorParameters()
	config.ScanThresholds = []float64{50, 100, 150, 200, 300}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, config.Validate()
}

// Validate checks the run settings and the FRIB parameters. Detector
// parameters are checked once they are known (see DetectorParametersForRun).
func (c Configuration) Validate() error {
	switch {
	case c.NumWorkers < 1:
		return &ConfigError{Field: "num_workers", Reason: "must be at least 1"}
	case c.MaxEvents < 0:
		return &ConfigError{Field: "max_events", Reason: "must not be negative"}
	case c.Skip < 0:
		return &ConfigError{Field: "skip", Reason: "must not be negative"}
	case c.CompressionLevel < 0 || c.CompressionLevel > 9:
		return &ConfigError{Field: "compression_level", Reason: "must be between 0 and 9"}
	}
	return c.Frib.Validate()
}
