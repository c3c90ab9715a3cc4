package fribtrace

import (
	"errors"
	"fmt"
)

// ErrNoTriggerPeak is returned when an operation needs the triggering IC
// peak and the event has none.
var ErrNoTriggerPeak = errors.New("no triggering IC peak in event")

// ErrInvalidEventRange is returned when the meta record of a trace file
// holds a negative or inverted event range.
var ErrInvalidEventRange = errors.New("invalid event range")

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrOpenGroup represents an error when opening a group of an input file.
type ErrOpenGroup struct {
	GroupName string
	Err       error
}

func (e *ErrOpenGroup) Error() string {
	return fmt.Sprintf("error opening group %q: %v", e.GroupName, e.Err)
}

func (e *ErrOpenGroup) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error { return e.Err }

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error { return e.Err }

// ShapeError reports raw data that does not have the layout of a FRIB
// trace: wrong number of samples or a missing channel column.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error: %s is %d, expected %d", e.What, e.Got, e.Want)
}

// ConfigError reports an invalid analysis parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}
