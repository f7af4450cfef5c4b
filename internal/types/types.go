// =============================================================================
// rtsort - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - channelsort
//   - csvparser
//   - xlsxparser
//   - processor
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// TABULAR TYPES
// =============================================================================

// Header is the ordered list of column names from the first record of an
// export. It is positionally aligned with every data row.
type Header []string

// Row is a single data record. The first cell is the row-index
// ("Location") field, which is overwritten when rows are renumbered.
type Row []string

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table is a parsed export: a header plus its data rows.
type Table struct {
	// Header contains the column names, copied verbatim to the output.
	Header Header

	// Rows contains the data rows, excluding the header.
	Rows []Row

	// SourceFile is the path the table was read from, if any.
	SourceFile string

	// SheetName is the worksheet the table was read from (xlsx only).
	SheetName string
}

// =============================================================================
// ORDERING TYPES
// =============================================================================

// FieldIndexSet holds the resolved column positions used for ordering.
// It is computed once per run and passed by value.
type FieldIndexSet struct {
	// SortField is the column whose value orders ordinary records.
	SortField int

	// NameField is the column inspected for service membership.
	NameField int
}

// Widths of the legacy composite key fields.
const (
	GroupWidth     = 16
	ChannelWidth   = 2
	SortValueWidth = 9
)

// SortKey is the derived ordering key of a record.
// Group is empty for ordinary records.
type SortKey struct {
	Group     string
	Channel   int
	SortValue string
}

// IsService reports whether the key belongs to a recognized service.
func (k SortKey) IsService() bool {
	return k.Group != ""
}

// Composite renders the key as the legacy fixed-width sort string:
// group left-justified to 16, channel zero-padded to 2,
// sort value left-justified to 9.
func (k SortKey) Composite() string {
	return PadRight(k.Group, GroupWidth) +
		fmt.Sprintf("%0*d", ChannelWidth, k.Channel) +
		PadRight(k.SortValue, SortValueWidth)
}

// PadRight pads s with trailing spaces to at least length characters
// (runes, not bytes).
// Longer strings are returned unchanged.
func PadRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
