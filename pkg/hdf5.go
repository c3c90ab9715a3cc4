package fribtrace

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
	"gonum.org/v1/gonum/mat"
)

// TraceFile is a merged AT-TPC run file opened for reading. Only the FRIB
// part of it is used here.
type TraceFile struct {
	File       *hdf5.File
	Filename   string
	fribEvents *hdf5.Group
}

func FribDatasetName(eventID int) string {
	return fmt.Sprintf("evt%d_%d", eventID, FribModuleID)
}

func OpenTraceFile(filename string) (*TraceFile, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	fribGroup, err := f.OpenGroup("frib")
	if err != nil {
		f.Close()
		return nil, &ErrOpenGroup{GroupName: "frib", Err: err}
	}
	defer fribGroup.Close()
	evtGroup, err := fribGroup.OpenGroup("evt")
	if err != nil {
		f.Close()
		return nil, &ErrOpenGroup{GroupName: "frib/evt", Err: err}
	}
	return &TraceFile{File: f, Filename: filename, fribEvents: evtGroup}, nil
}

// EventRange returns the first and last event numbers stored by the merger
// in the meta/meta dataset.
func (t *TraceFile) EventRange() (int, int, error) {
	metaGroup, err := t.File.OpenGroup("meta")
	if err != nil {
		return 0, 0, &ErrOpenGroup{GroupName: "meta", Err: err}
	}
	defer metaGroup.Close()

	dset, err := metaGroup.OpenDataset("meta")
	if err != nil {
		return 0, 0, fmt.Errorf("error opening meta dataset: %w", err)
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return 0, 0, fmt.Errorf("error reading meta dimensions: %w", err)
	}
	size := uint(1)
	for _, d := range dims {
		size *= d
	}
	meta := make([]float64, size)
	if err := dset.Read(&meta); err != nil {
		return 0, 0, fmt.Errorf("error reading meta dataset: %w", err)
	}
	return eventRangeFromMeta(meta)
}

// eventRangeFromMeta decodes the merger meta record: first event at index 0,
// last event at index 2.
func eventRangeFromMeta(meta []float64) (int, int, error) {
	if len(meta) < 3 {
		return 0, 0, &ShapeError{What: "meta size", Got: len(meta), Want: 3}
	}
	first, last := int(meta[0]), int(meta[2])
	if first < 0 || last < first {
		return 0, 0, fmt.Errorf("%w: first %d, last %d", ErrInvalidEventRange, first, last)
	}
	return first, last, nil
}

// ReadFribEvent loads the digitizer matrix (samples x channels) of an event.
// Events without FRIB data return false and no error.
func (t *TraceFile) ReadFribEvent(eventID int) (*mat.Dense, bool, error) {
	name := FribDatasetName(eventID)
	if !t.fribEvents.LinkExists(name) {
		return nil, false, nil
	}
	dset, err := t.fribEvents.OpenDataset(name)
	if err != nil {
		return nil, false, fmt.Errorf("error opening dataset %s: %w", name, err)
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, false, fmt.Errorf("error reading dimensions of %s: %w", name, err)
	}
	if len(dims) != 2 || dims[0] == 0 || dims[1] == 0 {
		return nil, false, &ShapeError{What: fmt.Sprintf("rank of %s", name), Got: len(dims), Want: 2}
	}
	data := make([]float64, dims[0]*dims[1])
	if err := dset.Read(&data); err != nil {
		return nil, false, fmt.Errorf("error reading dataset %s: %w", name, err)
	}
	return mat.NewDense(int(dims[0]), int(dims[1]), data), true, nil
}

func (t *TraceFile) Close() error {
	t.fribEvents.Close()
	return t.File.Close()
}

func createFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	plist.SetChunk(chunks)
	plist.SetDeflate(compressionLevel)

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, evtCounter int) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array, evtCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, evtCounter int) error {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	// extend
	rowsInFile := uint(evtCounter)
	newsize := []uint{rowsInFile + length}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}

	return dataset.WriteSubset(data, dataspace, filespace)
}
