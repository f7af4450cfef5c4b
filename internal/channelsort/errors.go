package channelsort

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

// ErrMalformedInput is matched by every *MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

// ConfigurationError reports a problem that makes the whole run unsortable:
// a required column could not be found in the header, or a service record
// carries a channel designator that is not an integer.
type ConfigurationError struct {
	// Field is the logical field involved ("sort field", "name field").
	Field string

	// Candidates lists the header names that were sought, if any.
	Candidates []string

	// Row is the 1-based data row number, or 0 for header problems.
	Row int

	// Value is the offending cell value, if any.
	Value string

	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("%s: none of [%s] found in header", e.Field, quoteJoin(e.Candidates))
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfiguration) succeed for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MalformedInputError reports a row that is too short for the resolved
// column indices.
type MalformedInputError struct {
	Row     int
	Index   int
	Columns int
}

func (e *MalformedInputError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("column %d requested but row has %d column(s)", e.Index, e.Columns)
	}
	return fmt.Sprintf("row %d: column %d requested but row has %d column(s)", e.Row, e.Index, e.Columns)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
