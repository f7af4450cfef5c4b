// =============================================================================
// rtsort - Channel Sort Pipeline
// =============================================================================
//
// The pipeline turns the rows of a channel export into their final order:
//
//   1. Resolve the sort field index (explicit override or header name)
//   2. Resolve the name field index
//   3. Drop rows that carry no data
//   4. Derive a sort key for every retained row
//   5. Stable-sort the rows by key
//   6. Renumber the first cell of every row, starting at 1
//
// Every configuration problem is reported before the sort starts, and the
// pipeline either returns the complete result or an error.
//
// =============================================================================

package channelsort

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"github.com/ginjaninja78/rtsort/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures how rows are ordered.
type Options struct {
	// SortFieldIndex is an explicit sort column. Negative means detect it
	// from SortFieldNames.
	SortFieldIndex int

	// NameFieldIndex is an explicit name column. Negative means detect it
	// from NameFieldNames.
	NameFieldIndex int

	// SortFieldNames are the header names accepted for the sort column.
	SortFieldNames []string

	// NameFieldNames are the header names accepted for the name column.
	NameFieldNames []string

	// ServiceNames are the name prefixes whose records are grouped into
	// trailing blocks ordered by channel number.
	ServiceNames []string
}

// DefaultOptions returns the options matching an RT Systems export.
func DefaultOptions() Options {
	return Options{
		SortFieldIndex: -1,
		NameFieldIndex: -1,
		SortFieldNames: []string{"Receive Frequency"},
		NameFieldNames: []string{"Name"},
		ServiceNames:   []string{"FRS/GMRS"},
	}
}

// =============================================================================
// LOGGING
// =============================================================================

// Logger is the logging interface used by the pipeline. *slog.Logger
// satisfies it; args are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var discardLogger = slog.New(slog.DiscardHandler)

func loggerOrDiscard(logger Logger) Logger {
	if logger == nil {
		return discardLogger
	}
	return logger
}

// =============================================================================
// SORTER
// =============================================================================

// Stats summarizes one pipeline run.
type Stats struct {
	Fields types.FieldIndexSet

	RowsRead    int
	RowsDropped int
	RowsWritten int

	// ServiceRecords counts the records moved into each service block.
	ServiceRecords map[string]int
}

// Sorter orders channel export rows.
type Sorter struct {
	opts   Options
	logger Logger
}

// New creates a Sorter. A nil logger discards log output.
func New(opts Options, logger Logger) *Sorter {
	return &Sorter{
		opts:   opts,
		logger: loggerOrDiscard(logger),
	}
}

// Process filters, sorts and renumbers rows. The header is returned
// unchanged and the input rows are not modified.
func (s *Sorter) Process(header types.Header, rows []types.Row) (types.Header, []types.Row, Stats, error) {
	stats := Stats{
		RowsRead:       len(rows),
		ServiceRecords: make(map[string]int),
	}

	fields, err := ResolveFields(header, s.opts, s.logger)
	if err != nil {
		return nil, nil, stats, err
	}
	stats.Fields = fields

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if !HasData(row) {
			stats.RowsDropped++
			continue
		}

		key, err := DeriveKey(row, fields, s.opts.ServiceNames)
		if err != nil {
			return nil, nil, stats, withRow(err, i+1)
		}
		if key.IsService() {
			stats.ServiceRecords[key.Group]++
		}

		records = append(records, Record{Row: row.Clone(), Key: key})
	}

	s.logger.Debug("sorting records", "records", len(records), "dropped", stats.RowsDropped)

	slices.SortStableFunc(records, CompareRecords)

	out := make([]types.Row, len(records))
	for i, rec := range records {
		rec.Row[0] = strconv.Itoa(i + 1)
		out[i] = rec.Row
	}
	stats.RowsWritten = len(out)

	return header, out, stats, nil
}

// Process is a convenience wrapper around New(opts, logger).Process.
func Process(header types.Header, rows []types.Row, opts Options, logger Logger) (types.Header, []types.Row, error) {
	h, out, _, err := New(opts, logger).Process(header, rows)
	return h, out, err
}

// withRow attaches a 1-based data row number to a key derivation error.
func withRow(err error, row int) error {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		cfgErr.Row = row
		return cfgErr
	}
	var inputErr *MalformedInputError
	if errors.As(err, &inputErr) {
		inputErr.Row = row
		return inputErr
	}
	return err
}
