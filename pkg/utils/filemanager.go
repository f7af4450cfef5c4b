// =============================================================================
// rtsort - File Management Utilities
// =============================================================================
//
// This module handles the file operations around a sort run:
//   - Deriving the output file name from the input file name
//   - Writing output atomically, so a failed run never leaves a partial file
//   - Small file inspection helpers
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC OUTPUT
// =============================================================================

// WriteFileAtomic writes a file by streaming into a temporary file in the
// same directory and renaming it over path once write succeeds. If write
// fails, the temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	buffered := bufio.NewWriter(file)
	if err = write(buffered); err != nil {
		return err
	}
	if err = buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Original file name (without extension)
//   - params: A map of placeholder values.
//
// EXAMPLE:
//   format: "{original}_sorted_{date}"
//   params: {"original": "ft60"}
//   output: "ft60_sorted_20240115"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	pairs := []string{
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		pairs = append(pairs, "{uuid}", uuid.NewString())
	}

	for _, key := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, "{"+key+"}", params[key])
	}

	// A single pass never rescans substituted text, so braces inside
	// param values are kept literally.
	return strings.NewReplacer(pairs...).Replace(format)
}

// DefaultOutputPath derives the output path for inputPath: same directory,
// same extension, base name produced by format.
func DefaultOutputPath(inputPath, format string) string {
	ext := filepath.Ext(inputPath)
	original := strings.TrimSuffix(filepath.Base(inputPath), ext)

	name := GenerateOutputFileName(format, map[string]string{"original": original})

	return filepath.Join(filepath.Dir(inputPath), name+ext)
}

// =============================================================================
// FILE HELPERS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SameFile reports whether two paths name the same existing file.
func SameFile(a, b string) bool {
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
