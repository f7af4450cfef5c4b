// =============================================================================
// rtsort - Columns Command
// =============================================================================
//
// This file defines the 'columns' command, which lists the header of an
// export with column indices and shows which columns the sort command
// would use. It is useful for picking values for --sort-field and
// --name-field when the header names differ from the defaults.
//
// COMMAND USAGE:
//   rtsort columns <input> [--sheet NAME]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/rtsort/internal/channelsort"
	"github.com/ginjaninja78/rtsort/internal/processor"
	"github.com/spf13/cobra"
)

var columnsSheet string

// columnsCmd represents the 'columns' command.
var columnsCmd = &cobra.Command{
	Use:   "columns <input>",
	Short: "List the columns of an export and the ones used for sorting",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)

	columnsCmd.Flags().StringVar(&columnsSheet, "sheet", "", "Worksheet to read from xlsx exports (default: first sheet)")
}

func runColumns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if columnsSheet != "" {
		cfg.XLSXSettings.SheetName = columnsSheet
	}

	table, err := processor.LoadTable(args[0], cfg)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for i, name := range table.Header {
		fmt.Fprintf(out, "%3d  %s\n", i, name)
	}
	fmt.Fprintln(out)

	fields, err := channelsort.ResolveFields(table.Header, cfg.SortOptions(), newLogger(cmd, cfg))
	if err != nil {
		fmt.Fprintf(out, "Columns could not be resolved: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "Sort column: %s\n", describeColumn(table.Header, fields.SortField))
	fmt.Fprintf(out, "Name column: %s\n", describeColumn(table.Header, fields.NameField))
	return nil
}

func describeColumn(header []string, index int) string {
	if index < 0 || index >= len(header) {
		return fmt.Sprintf("%d (outside the header)", index)
	}
	return fmt.Sprintf("%d (%s)", index, header[index])
}
