package model

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when an aggregate that requires at least
// one row (min, max, percentile) runs on an empty sequence.
var ErrEmptyDataset = errors.New("empty dataset")

// ErrInvalidParameter is returned for out-of-range analysis parameters
// such as a non-positive tile count or a negative offset/limit.
var ErrInvalidParameter = errors.New("invalid parameter")

// SchemaError reports a required column that is missing or holds a value
// of the wrong type or range. Detected at load time and fatal for the run.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch on column %q: %s", e.Column, e.Reason)
}
