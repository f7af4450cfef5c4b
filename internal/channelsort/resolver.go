package channelsort

import (
	"errors"
	"slices"

	"github.com/ginjaninja78/rtsort/internal/types"
)

// Logical field labels used in log lines and errors.
const (
	SortFieldLabel = "sort field"
	NameFieldLabel = "name field"
)

// Hard default column positions, used only when name detection is disabled
// by configuring an empty candidate list.
const (
	DefaultSortFieldIndex = 1
	DefaultNameFieldIndex = 7
)

// errNoCandidates is returned when detection is requested without names.
var errNoCandidates = errors.New("no candidate column names configured")

// Resolve returns the column index for a field.
//
// A non-negative explicit index is returned unchanged, without checking it
// against the header; a bad index surfaces later as a MalformedInputError.
// Otherwise the header is scanned in order and the position of the first
// cell exactly equal to any candidate is returned.
func Resolve(header types.Header, field string, candidates []string, explicit int, logger Logger) (int, error) {
	if explicit >= 0 {
		return explicit, nil
	}
	if len(candidates) == 0 {
		return -1, &ConfigurationError{Field: field, Err: errNoCandidates}
	}

	for i, name := range header {
		if slices.Contains(candidates, name) {
			loggerOrDiscard(logger).Info("detected column", "field", field, "column", name, "index", i)
			return i, nil
		}
	}

	return -1, &ConfigurationError{
		Field:      field,
		Candidates: slices.Clone(candidates),
		Err:        errors.New("column not found"),
	}
}

// ResolveFields resolves the sort and name field indices for a run. It
// either resolves both or fails.
func ResolveFields(header types.Header, opts Options, logger Logger) (types.FieldIndexSet, error) {
	sortIdx, err := resolveWithFallback(header, SortFieldLabel, opts.SortFieldNames, opts.SortFieldIndex, DefaultSortFieldIndex, logger)
	if err != nil {
		return types.FieldIndexSet{}, err
	}

	nameIdx, err := resolveWithFallback(header, NameFieldLabel, opts.NameFieldNames, opts.NameFieldIndex, DefaultNameFieldIndex, logger)
	if err != nil {
		return types.FieldIndexSet{}, err
	}

	return types.FieldIndexSet{SortField: sortIdx, NameField: nameIdx}, nil
}

func resolveWithFallback(header types.Header, field string, candidates []string, explicit, fallback int, logger Logger) (int, error) {
	if explicit < 0 && len(candidates) == 0 {
		loggerOrDiscard(logger).Debug("column detection disabled, using default index", "field", field, "index", fallback)
		return fallback, nil
	}
	return Resolve(header, field, candidates, explicit, logger)
}
