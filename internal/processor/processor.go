// =============================================================================
// rtsort - Processor
// =============================================================================
//
// The processor runs one sort job from an input file to an output file:
//
//   1. Determine the input and output formats from the file extensions
//   2. Check the output path (no accidental overwrite of existing files)
//   3. Parse the input export
//   4. Filter, sort and renumber the rows
//   5. Write the output atomically (skipped on dry runs)
//
// Any failure aborts the job before the output path is touched.
//
// =============================================================================

package processor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/rtsort/internal/channelsort"
	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/csvparser"
	"github.com/ginjaninja78/rtsort/internal/types"
	"github.com/ginjaninja78/rtsort/internal/xlsxparser"
	"github.com/ginjaninja78/rtsort/pkg/utils"
)

// ErrOutputExists is returned when the output file exists and overwriting
// is not allowed.
var ErrOutputExists = errors.New("output file already exists")

// =============================================================================
// FILE FORMATS
// =============================================================================

// Format identifies a tabular file format.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return 0, fmt.Errorf("unsupported file type %q (expected .csv, .txt, .xlsx or .xlsm)", filepath.Ext(path))
	}
}

// LoadTable reads an export in the format implied by its extension.
func LoadTable(path string, cfg *config.Config) (*types.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return xlsxparser.Parse(path, cfg.XLSXSettings)
	default:
		return csvparser.Parse(path, cfg.CSVSettings)
	}
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// InputFile is the path to the export that was read.
	InputFile string

	// OutputFile is the path the sorted export was (or would be) written to.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// DryRun is true when the output was not written.
	DryRun bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Fields are the resolved sort and name columns.
	Fields types.FieldIndexSet

	RowsRead    int
	RowsDropped int
	RowsWritten int

	// ServiceRecords counts rows moved into each service block.
	ServiceRecords map[string]int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Options controls a single run.
type Options struct {
	// OutputPath is the destination. Empty derives it from the input path
	// using the configured output name format.
	OutputPath string

	// DryRun sorts without writing the output file.
	DryRun bool
}

// Processor handles the sorting of a single export file.
type Processor struct {
	inputPath string
	cfg       *config.Config
	opts      Options
	logger    *slog.Logger
}

// New creates a new Processor. A nil logger discards log output.
func New(inputPath string, cfg *config.Config, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{
		inputPath: inputPath,
		cfg:       cfg,
		opts:      opts,
		logger:    logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the sort job.
func (p *Processor) Run() Result {
	startTime := time.Now()
	result := Result{
		InputFile: p.inputPath,
		DryRun:    p.opts.DryRun,
	}

	// =========================================================================
	// STEP 1: DETERMINE FORMATS AND OUTPUT PATH
	// =========================================================================

	outputPath := p.opts.OutputPath
	if outputPath == "" {
		outputPath = utils.DefaultOutputPath(p.inputPath, p.cfg.OutputNameFormat)
	}
	result.OutputFile = outputPath

	if _, err := DetectFormat(p.inputPath); err != nil {
		result.Error = fmt.Errorf("input: %w", err)
		return result
	}
	outputFormat, err := DetectFormat(outputPath)
	if err != nil {
		result.Error = fmt.Errorf("output: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: CHECK OUTPUT PATH
	// =========================================================================

	if !p.opts.DryRun && !p.cfg.Overwrite && utils.FileExists(outputPath) {
		if utils.SameFile(p.inputPath, outputPath) {
			result.Error = fmt.Errorf("%w: output is the input file %s (use --force to sort in place)", ErrOutputExists, outputPath)
		} else {
			result.Error = fmt.Errorf("%w: %s (use --force to replace it)", ErrOutputExists, outputPath)
		}
		return result
	}

	// =========================================================================
	// STEP 3: PARSE INPUT
	// =========================================================================

	p.logger.Info("reading channel export", "file", p.inputPath)

	table, err := LoadTable(p.inputPath, p.cfg)
	if err != nil {
		result.Error = fmt.Errorf("failed to read %s: %w", p.inputPath, err)
		return result
	}

	p.logger.Debug("parsed export", "columns", len(table.Header), "rows", len(table.Rows))

	// =========================================================================
	// STEP 4: FILTER, SORT AND RENUMBER
	// =========================================================================

	sorter := channelsort.New(p.cfg.SortOptions(), p.logger)
	header, rows, stats, err := sorter.Process(table.Header, table.Rows)
	if err != nil {
		result.Error = fmt.Errorf("failed to sort %s: %w", p.inputPath, err)
		return result
	}

	result.Stats = ProcessingStats{
		Fields:         stats.Fields,
		RowsRead:       stats.RowsRead,
		RowsDropped:    stats.RowsDropped,
		RowsWritten:    stats.RowsWritten,
		ServiceRecords: stats.ServiceRecords,
	}

	for service, count := range stats.ServiceRecords {
		p.logger.Debug("service block", "service", service, "records", count)
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	if p.opts.DryRun {
		p.logger.Info("dry run, output not written", "file", outputPath, "rows", len(rows))
	} else {
		err := utils.WriteFileAtomic(outputPath, func(w io.Writer) error {
			return p.write(w, outputFormat, table.SheetName, header, rows)
		})
		if err != nil {
			result.Error = fmt.Errorf("failed to write %s: %w", outputPath, err)
			return result
		}
		p.logger.Info("wrote sorted export", "file", outputPath, "rows", len(rows))
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

func (p *Processor) write(w io.Writer, format Format, sheetName string, header types.Header, rows []types.Row) error {
	switch format {
	case FormatXLSX:
		return xlsxparser.Write(w, sheetName, header, rows)
	default:
		return csvparser.Write(w, header, rows, p.cfg.CSVSettings)
	}
}
