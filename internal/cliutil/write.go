// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docsync/docsync/internal/fileutil"
	"github.com/docsync/docsync/internal/pathutil"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteOutput writes data to w when path is empty, and to the file at path
// otherwise. The file may not be a symlink or one of inputs.
func WriteOutput(w io.Writer, path string, data []byte, inputs ...string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := ValidateOutputPath(path, inputs); err != nil {
		return err
	}
	cleaned, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, fileutil.DefinitionMode); err != nil {
		return fmt.Errorf("cliutil: writing %s: %w", path, err)
	}
	return nil
}

// ValidateOutputPath checks that writing outputPath would not overwrite any
// of the input files.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("cliutil: invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("cliutil: invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("cliutil: output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return nil
}
