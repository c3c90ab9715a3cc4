package fribtrace

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type ICResultHDF5 struct {
	event              int32
	status             int32
	ic_amplitude       float64
	ic_integral        float64
	ic_centroid        float64
	ic_multiplicity    int32
	trigger_centroid   float64
	ic_correction      float64
	applied_correction float64
}

type RunInfoHDF5 struct {
	run_number int32
	min_event  int32
	max_event  int32
}

func newICResultRow(result ICResult) ICResultHDF5 {
	return ICResultHDF5{
		event:              int32(result.EventID),
		status:             int32(result.Status),
		ic_amplitude:       result.Amplitude,
		ic_integral:        result.Integral,
		ic_centroid:        result.Centroid,
		ic_multiplicity:    int32(result.Multiplicity),
		trigger_centroid:   result.TriggerCentroid,
		ic_correction:      result.Correction,
		applied_correction: result.AppliedCorrection,
	}
}

// Writer stores the IC results of a run, one row per event, in the order
// they are given.
type Writer struct {
	File         *hdf5.File
	Filename     string
	RunGroup     *hdf5.Group
	FribGroup    *hdf5.Group
	RunInfoTable *hdf5.Dataset
	ICTable      *hdf5.Dataset
	EvtCounter   int
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	logger.Info(fmt.Sprintf("Creating file: %s", filename), "writer")

	var err error
	writer := &Writer{Filename: filename}
	writer.File, err = createFile(filename)
	if err != nil {
		return nil, err
	}
	writer.RunGroup, err = createGroup(writer.File, "Run")
	if err != nil {
		writer.File.Close()
		return nil, err
	}
	writer.FribGroup, err = createGroup(writer.File, "FRIB")
	if err != nil {
		writer.File.Close()
		return nil, err
	}
	writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}, compressionLevel)
	if err != nil {
		writer.File.Close()
		return nil, err
	}
	writer.ICTable, err = createTable(writer.FribGroup, "ic", ICResultHDF5{}, compressionLevel)
	if err != nil {
		writer.File.Close()
		return nil, err
	}
	return writer, nil
}

func (w *Writer) WriteRunInfo(runNumber int, minEvent int, maxEvent int) error {
	info := RunInfoHDF5{
		run_number: int32(runNumber),
		min_event:  int32(minEvent),
		max_event:  int32(maxEvent),
	}
	return writeEntryToTable(w.RunInfoTable, info, 0)
}

func (w *Writer) WriteResult(result ICResult) error {
	err := writeEntryToTable(w.ICTable, newICResultRow(result), w.EvtCounter)
	if err != nil {
		return fmt.Errorf("error writing event %d: %w", result.EventID, err)
	}
	w.EvtCounter++
	return nil
}

func (w *Writer) Close() error {
	w.ICTable.Close()
	w.RunInfoTable.Close()
	w.FribGroup.Close()
	w.RunGroup.Close()
	return w.File.Close()
}
