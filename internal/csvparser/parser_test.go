package csvparser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSettings() config.CSVSettings {
	return config.Default().CSVSettings
}

func TestRead(t *testing.T) {
	input := "Location,Receive Frequency,Name\r\n" +
		"1,146.520,Simplex\r\n" +
		"2,,\r\n" +
		"3,462.562,\"FRS/GMRS 1\"\r\n" +
		"4, 146.460 ,Repeater,extra\r\n"

	table, err := Read(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, types.Header{"Location", "Receive Frequency", "Name"}, table.Header)
	assert.Equal(t, []types.Row{
		{"1", "146.520", "Simplex"},
		{"2", "", ""},
		{"3", "462.562", "FRS/GMRS 1"},
		{"4", " 146.460 ", "Repeater", "extra"},
	}, table.Rows)
}

func TestReadDelimiter(t *testing.T) {
	settings := defaultSettings()
	settings.Delimiter = "pipe"

	table, err := Read(strings.NewReader("A|B\n1|x,y\n"), settings)
	require.NoError(t, err)
	assert.Equal(t, types.Header{"A", "B"}, table.Header)
	assert.Equal(t, []types.Row{{"1", "x,y"}}, table.Rows)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""), defaultSettings())
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadHeaderOnly(t *testing.T) {
	table, err := Read(strings.NewReader("A,B\n"), defaultSettings())
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestReadStrictQuotes(t *testing.T) {
	settings := defaultSettings()
	strict := false
	settings.LazyQuotes = &strict

	_, err := Read(strings.NewReader("A,B\n1,a\"b\n"), settings)
	assert.Error(t, err)

	_, err = Read(strings.NewReader("A,B\n1,a\"b\n"), defaultSettings())
	assert.NoError(t, err)
}

func TestWrite(t *testing.T) {
	header := types.Header{"Location", "Name"}
	rows := []types.Row{{"1", "FRS/GMRS 1"}, {"2", "a,b"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, header, rows, defaultSettings()))
	assert.Equal(t, "Location,Name\r\n1,FRS/GMRS 1\r\n2,\"a,b\"\r\n", buf.String())

	settings := defaultSettings()
	lf := false
	settings.UseCRLF = &lf
	settings.Delimiter = ";"

	buf.Reset()
	require.NoError(t, Write(&buf, header, rows, settings))
	assert.Equal(t, "Location;Name\n1;FRS/GMRS 1\n2;a,b\n", buf.String())
}

func TestParseRoundTrip(t *testing.T) {
	input := "Location,Receive Frequency,Name\r\n1,146.460,Repeater\r\n2,146.520,\"Simplex, calling\"\r\n"
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	table, err := Parse(path, defaultSettings())
	require.NoError(t, err)
	assert.Equal(t, path, table.SourceFile)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table.Header, table.Rows, defaultSettings()))
	assert.Equal(t, input, buf.String())
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"), defaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
