package trips

import (
	"errors"
	"fmt"
)

// ErrInvalidFilters is returned when a Filters value falls outside the supported sets.
// The prompt layer re-asks for bad input, so seeing this from Load is a caller bug.
var ErrInvalidFilters = errors.New("invalid filters")

// DataSourceError reports a city dataset that is missing, unreadable, or lacks a required column
type DataSourceError struct {
	City string
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("loading %s trips from %s: %v", e.City, e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a row whose value could not be parsed.
// Loading stops at the first one.
type MalformedRecordError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
