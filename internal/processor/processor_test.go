package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/rtsort/internal/channelsort"
	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = "Location,Receive Frequency,Transmit Frequency,Name\r\n" +
	"1,146.520,146.520,Simplex\r\n" +
	"2,462.587,462.587,FRS/GMRS 2\r\n" +
	"3,,,\r\n" +
	"4,146.460,146.460,Repeater\r\n" +
	"5,462.562,462.562,FRS/GMRS 1\r\n"

const sortedCSV = "Location,Receive Frequency,Transmit Frequency,Name\r\n" +
	"1,146.460,146.460,Repeater\r\n" +
	"2,146.520,146.520,Simplex\r\n" +
	"3,462.562,462.562,FRS/GMRS 1\r\n" +
	"4,462.587,462.587,FRS/GMRS 2\r\n"

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.csv":  FormatCSV,
		"a.TXT":  FormatCSV,
		"a.xlsx": FormatXLSX,
		"a.xlsm": FormatXLSX,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := DetectFormat("a.json")
	assert.Error(t, err)
}

func TestRunCSV(t *testing.T) {
	input := writeInput(t, "ft60.csv", exportCSV)

	result := New(input, config.Default(), Options{}, nil).Run()
	require.NoError(t, result.Error)
	require.True(t, result.Success)

	assert.Equal(t, filepath.Join(filepath.Dir(input), "ft60_sorted.csv"), result.OutputFile)
	assert.Equal(t, types.FieldIndexSet{SortField: 1, NameField: 3}, result.Stats.Fields)
	assert.Equal(t, 5, result.Stats.RowsRead)
	assert.Equal(t, 1, result.Stats.RowsDropped)
	assert.Equal(t, 4, result.Stats.RowsWritten)
	assert.Equal(t, map[string]int{"FRS/GMRS": 2}, result.Stats.ServiceRecords)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, sortedCSV, string(data))
}

func TestRunIsIdempotent(t *testing.T) {
	input := writeInput(t, "sorted.csv", sortedCSV)
	output := filepath.Join(filepath.Dir(input), "again.csv")

	result := New(input, config.Default(), Options{OutputPath: output}, nil).Run()
	require.NoError(t, result.Error)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, sortedCSV, string(data))
}

func TestRunDryRun(t *testing.T) {
	input := writeInput(t, "ft60.csv", exportCSV)

	result := New(input, config.Default(), Options{DryRun: true}, nil).Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.True(t, result.DryRun)
	assert.Equal(t, 4, result.Stats.RowsWritten)
	assert.NoFileExists(t, result.OutputFile)
}

func TestRunRefusesExistingOutput(t *testing.T) {
	input := writeInput(t, "ft60.csv", exportCSV)
	output := filepath.Join(filepath.Dir(input), "out.csv")
	require.NoError(t, os.WriteFile(output, []byte("keep"), 0o644))

	result := New(input, config.Default(), Options{OutputPath: output}, nil).Run()
	require.Error(t, result.Error)
	assert.ErrorIs(t, result.Error, ErrOutputExists)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	cfg := config.Default()
	cfg.Overwrite = true
	result = New(input, cfg, Options{OutputPath: output}, nil).Run()
	require.NoError(t, result.Error)

	data, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, sortedCSV, string(data))
}

func TestRunInPlace(t *testing.T) {
	input := writeInput(t, "ft60.csv", exportCSV)

	result := New(input, config.Default(), Options{OutputPath: input}, nil).Run()
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "output is the input file")

	cfg := config.Default()
	cfg.Overwrite = true
	result = New(input, cfg, Options{OutputPath: input}, nil).Run()
	require.NoError(t, result.Error)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, sortedCSV, string(data))
}

func TestRunConfigurationErrorWritesNothing(t *testing.T) {
	input := writeInput(t, "ft60.csv", "Location,Frequency,Name\r\n1,146.520,Simplex\r\n")

	result := New(input, config.Default(), Options{}, nil).Run()
	require.Error(t, result.Error)
	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, channelsort.ErrConfiguration)
	assert.NoFileExists(t, result.OutputFile)

	entries, err := os.ReadDir(filepath.Dir(input))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunMalformedRowWritesNothing(t *testing.T) {
	input := writeInput(t, "ft60.csv", "Location,Receive Frequency,Name\r\n1,146.520\r\n")

	result := New(input, config.Default(), Options{}, nil).Run()
	require.Error(t, result.Error)
	assert.ErrorIs(t, result.Error, channelsort.ErrMalformedInput)
	assert.NoFileExists(t, result.OutputFile)
}

func TestRunExplicitIndices(t *testing.T) {
	input := writeInput(t, "ft60.csv", "#,Freq,Label\r\n1,146.520,B\r\n2,146.460,A\r\n")

	cfg := config.Default()
	sortIdx, nameIdx := 1, 2
	cfg.SortFieldIndex = &sortIdx
	cfg.NameFieldIndex = &nameIdx

	result := New(input, cfg, Options{}, nil).Run()
	require.NoError(t, result.Error)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "#,Freq,Label\r\n1,146.460,A\r\n2,146.520,B\r\n", string(data))
}

func TestRunCSVToXLSX(t *testing.T) {
	input := writeInput(t, "ft60.csv", exportCSV)
	output := filepath.Join(filepath.Dir(input), "ft60.xlsx")

	result := New(input, config.Default(), Options{OutputPath: output}, nil).Run()
	require.NoError(t, result.Error)

	table, err := LoadTable(output, config.Default())
	require.NoError(t, err)
	assert.Equal(t, types.Header{"Location", "Receive Frequency", "Transmit Frequency", "Name"}, table.Header)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, types.Row{"1", "146.460", "146.460", "Repeater"}, table.Rows[0])
	assert.Equal(t, types.Row{"4", "462.587", "462.587", "FRS/GMRS 2"}, table.Rows[3])

	// Sorting the workbook again yields the same rows.
	again := filepath.Join(filepath.Dir(input), "again.xlsx")
	result = New(output, config.Default(), Options{OutputPath: again}, nil).Run()
	require.NoError(t, result.Error)
	assert.Zero(t, result.Stats.RowsDropped)

	table2, err := LoadTable(again, config.Default())
	require.NoError(t, err)
	assert.Equal(t, table.Rows, table2.Rows)
}

func TestRunUnsupportedOutput(t *testing.T) {
	input := writeInput(t, "ft60.csv", exportCSV)

	result := New(input, config.Default(), Options{OutputPath: "out.json"}, nil).Run()
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "unsupported file type")
}
