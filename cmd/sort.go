// =============================================================================
// rtsort - Sort Command
// =============================================================================
//
// This file defines the 'sort' command, which reads a channel export,
// filters, sorts and renumbers its rows and writes the result.
//
// COMMAND USAGE:
//   rtsort sort <input> [output] [flags]
//
// FLAGS:
//   --sort-field        : Explicit 0-based sort column (alias --sortfield)
//   --name-field        : Explicit 0-based name column
//   --sort-field-name   : Header name(s) identifying the sort column
//   --name-field-name   : Header name(s) identifying the name column
//   --service           : Service name(s) grouped at the end by channel number
//   --sheet             : Worksheet to read from xlsx exports
//   --delimiter         : CSV delimiter
//   --dry-run           : Sort without writing the output file
//   --force             : Replace an existing output file
//
// =============================================================================

package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/processor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	sortField      int
	nameField      int
	sortFieldNames []string
	nameFieldNames []string
	serviceNames   []string
	sheetName      string
	delimiter      string
	dryRun         bool
	force          bool
)

// =============================================================================
// SORT COMMAND DEFINITION
// =============================================================================

// sortCmd represents the 'sort' command.
var sortCmd = &cobra.Command{
	Use:   "sort <input> [output]",
	Short: "Sort, filter and renumber a channel export",
	Long: `The sort command reads a channel export (.csv, .txt, .xlsx or .xlsm),
drops rows that hold nothing but a row number, sorts the remaining rows and
renumbers them from 1.

The sort and name columns are found by header name ("Receive Frequency" and
"Name" by default) unless given explicitly by index. Rows whose name starts
with a recognized service followed by a channel number are placed after all
other rows, grouped by service and ordered by channel number.

If no output path is given, the output is written next to the input using
the configured output name format ("{original}_sorted" by default). The
output format follows the output file extension.

Nothing is written if any row cannot be sorted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSort,
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(sortCmd)

	flags := sortCmd.Flags()
	flags.IntVar(&sortField, "sort-field", -1, "0-based index of the sort column (default: detect by name)")
	flags.IntVar(&nameField, "name-field", -1, "0-based index of the name column (default: detect by name)")
	flags.StringSliceVar(&sortFieldNames, "sort-field-name", nil, "Header name identifying the sort column (repeatable)")
	flags.StringSliceVar(&nameFieldNames, "name-field-name", nil, "Header name identifying the name column (repeatable)")
	flags.StringSliceVar(&serviceNames, "service", nil, "Service name grouped at the end by channel number (repeatable)")
	flags.StringVar(&sheetName, "sheet", "", "Worksheet to read from xlsx exports (default: first sheet)")
	flags.StringVar(&delimiter, "delimiter", "", "CSV delimiter: a single character, tab, pipe or semicolon")
	flags.BoolVar(&dryRun, "dry-run", false, "Sort without writing the output file")
	flags.BoolVarP(&force, "force", "f", false, "Replace an existing output file")

	// --sortfield is the option name used by earlier versions of the tool.
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "sortfield" {
			name = "sort-field"
		}
		return pflag.NormalizedName(name)
	})
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	applySortFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := processor.Options{DryRun: dryRun}
	if len(args) == 2 {
		opts.OutputPath = args[1]
	}

	logger := newLogger(cmd, cfg)
	result := processor.New(args[0], cfg, opts, logger).Run()
	if result.Error != nil {
		return result.Error
	}

	printSummary(cmd, result)
	return nil
}

// applySortFlags overlays explicitly set flags on the configuration.
func applySortFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("sort-field") {
		cfg.SortFieldIndex = &sortField
	}
	if flags.Changed("name-field") {
		cfg.NameFieldIndex = &nameField
	}
	if flags.Changed("sort-field-name") {
		cfg.SortFieldNames = sortFieldNames
	}
	if flags.Changed("name-field-name") {
		cfg.NameFieldNames = nameFieldNames
	}
	if flags.Changed("service") {
		cfg.ServiceNames = serviceNames
	}
	if flags.Changed("sheet") {
		cfg.XLSXSettings.SheetName = sheetName
	}
	if flags.Changed("delimiter") {
		cfg.CSVSettings.Delimiter = delimiter
	}
	if force {
		cfg.Overwrite = true
	}
}

func printSummary(cmd *cobra.Command, result processor.Result) {
	out := cmd.OutOrStdout()
	stats := result.Stats

	if result.DryRun {
		fmt.Fprintf(out, "Dry run: %s not written\n", result.OutputFile)
	} else {
		fmt.Fprintf(out, "Wrote %s\n", result.OutputFile)
	}
	fmt.Fprintf(out, "Sort column:     %d\n", stats.Fields.SortField)
	fmt.Fprintf(out, "Name column:     %d\n", stats.Fields.NameField)
	fmt.Fprintf(out, "Rows read:       %d\n", stats.RowsRead)
	fmt.Fprintf(out, "Rows dropped:    %d\n", stats.RowsDropped)
	fmt.Fprintf(out, "Rows written:    %d\n", stats.RowsWritten)

	for _, service := range slices.Sorted(maps.Keys(stats.ServiceRecords)) {
		fmt.Fprintf(out, "  %s: %d channel(s)\n", service, stats.ServiceRecords[service])
	}
}
