// =============================================================================
// rtsort - CSV Parser Module
// =============================================================================
//
// This module reads and writes channel exports in delimited text form.
// The first record is the header; every following record is a data row.
// Cells are treated as opaque strings: nothing is trimmed or cleaned, so
// the header and untouched cells are written back exactly as read.
//
// FEATURES:
//   - Configurable delimiter (comma, pipe, tab, semicolon, any single rune)
//   - Variable number of fields per row (row width is checked by the sorter)
//   - CRLF output by default, matching the radio programming software
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/types"
)

// ErrEmptyFile is returned when the input has no header record.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV settings from the configuration.
//
// RETURNS:
//   - A pointer to the Table containing the header and data rows.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := Read(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// Read parses CSV data from r.
func Read(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	csvReader := csv.NewReader(r)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, ErrEmptyFile
	}

	rows := make([]types.Row, 0, len(allRows)-1)
	for _, record := range allRows[1:] {
		rows = append(rows, types.Row(record))
	}

	return &types.Table{
		Header: types.Header(allRows[0]),
		Rows:   rows,
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Row width is validated against the resolved indices, not here.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes == nil || *settings.LazyQuotes

	return nil
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write writes the header followed by the rows to w.
func Write(w io.Writer, header types.Header, rows []types.Row, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = comma
	csvWriter.UseCRLF = settings.UseCRLF == nil || *settings.UseCRLF

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}
