package store

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the dataset file or object does not exist.
	ErrSourceNotFound = errors.New("data source not found")
	// ErrEmptySource is returned when the dataset has no data rows.
	ErrEmptySource = errors.New("data source is empty")
	// ErrMissingColumns is returned when required columns are absent from the header.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrInvalidRow is returned when a data row cannot be parsed or breaks a record invariant.
	ErrInvalidRow = errors.New("invalid row")
)

// DataLoadError describes why a dataset could not be loaded. It is fatal to
// startup: no partial table is ever returned alongside it.
type DataLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func loadError(source string, err error, format string, args ...any) *DataLoadError {
	return &DataLoadError{
		Source: source,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
