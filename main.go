// =============================================================================
// rtsort - Main Entry Point
// =============================================================================
//
// rtsort sorts the channel lists exported by RT Systems radio programmers.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   rtsort sort <input> [output]   - Sort, filter and renumber an export
//   rtsort columns <input>         - Show the columns used for sorting
//   rtsort version                 - Display the application version
//
// ARCHITECTURE:
//   - cmd/                  : CLI command definitions (Cobra)
//   - internal/channelsort  : Field resolution, sort keys, filter, pipeline
//   - internal/csvparser    : CSV export reading and writing
//   - internal/xlsxparser   : Excel export reading and writing
//   - internal/processor    : One file-to-file sort job
//   - internal/config       : YAML configuration
//   - pkg/utils             : Output naming and atomic writes
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/rtsort/cmd"
)

func main() {
	cmd.Execute()
}
