// =============================================================================
// rtsort - XLSX Parser Module
// =============================================================================
//
// This module reads and writes channel exports saved as Excel workbooks.
// A single worksheet is treated exactly like a CSV export: the first row is
// the header and every following row is a data row.
//
// NOTES:
//   - excelize trims trailing empty cells from each row, so rows are padded
//     back to the header width after reading.
//   - Cells are written as strings so frequencies like "146.520" keep their
//     trailing zeros.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/types"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the sheet created for written workbooks when no
// name is known.
const DefaultSheetName = "Sheet1"

// ErrEmptySheet is returned when the worksheet has no header row.
var ErrEmptySheet = errors.New("worksheet is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads one worksheet of an xlsx file.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - settings: The xlsx settings; an empty SheetName selects the first sheet.
//
// RETURNS:
//   - A pointer to the Table containing the header and data rows.
//   - An error if the workbook or sheet cannot be read.
func Parse(filePath string, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	table, err := parseFile(f, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// Read parses a workbook from r.
func Read(r io.Reader, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseFile(f, settings)
}

func parseFile(f *excelize.File, settings config.XLSXSettings) (*types.Table, error) {
	sheetName := settings.SheetName
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook", sheetName)
	}

	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(allRows) == 0 {
		return nil, ErrEmptySheet
	}

	header := types.Header(allRows[0])
	rows := make([]types.Row, 0, len(allRows)-1)
	for _, record := range allRows[1:] {
		rows = append(rows, padRow(record, len(header)))
	}

	return &types.Table{
		Header:    header,
		Rows:      rows,
		SheetName: sheetName,
	}, nil
}

// padRow extends a row with empty cells up to width.
func padRow(record []string, width int) types.Row {
	if len(record) >= width {
		return types.Row(record)
	}
	row := make(types.Row, width)
	copy(row, record)
	return row
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write writes the header and rows as a single-sheet workbook to w.
func Write(w io.Writer, sheetName string, header types.Header, rows []types.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheetName); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := writeRow(sw, 1, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(sw, i+2, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func writeRow(sw *excelize.StreamWriter, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cells))
	for i, v := range cells {
		values[i] = v
	}

	return sw.SetRow(cell, values)
}
