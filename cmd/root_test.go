package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExport = "Location,Receive Frequency,Transmit Frequency,Name\r\n" +
	"1,462.562,462.562,FRS/GMRS 1\r\n" +
	"2,,,\r\n" +
	"3,146.520,146.520,Simplex\r\n"

// The commands keep their flags in package variables, so every subcommand
// is executed once from a single test.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ft60.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte(testExport), 0o644))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	t.Run("sort", func(t *testing.T) {
		stdout.Reset()
		rootCmd.SetArgs([]string{"sort", input, output, "--sortfield", "1", "--name-field", "3"})
		require.NoError(t, rootCmd.Execute())

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "Location,Receive Frequency,Transmit Frequency,Name\r\n"+
			"1,146.520,146.520,Simplex\r\n"+
			"2,462.562,462.562,FRS/GMRS 1\r\n", string(data))

		assert.Contains(t, stdout.String(), "Wrote "+output)
		assert.Contains(t, stdout.String(), "Rows dropped:    1")
		assert.Contains(t, stdout.String(), "FRS/GMRS: 1 channel(s)")
	})

	t.Run("columns", func(t *testing.T) {
		stdout.Reset()
		rootCmd.SetArgs([]string{"columns", input})
		require.NoError(t, rootCmd.Execute())

		assert.Contains(t, stdout.String(), "  1  Receive Frequency\n")
		assert.Contains(t, stdout.String(), "Sort column: 1 (Receive Frequency)")
		assert.Contains(t, stdout.String(), "Name column: 3 (Name)")
	})

	t.Run("version", func(t *testing.T) {
		stdout.Reset()
		rootCmd.SetArgs([]string{"version"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, stdout.String(), "Version:    "+Version)
	})
}
