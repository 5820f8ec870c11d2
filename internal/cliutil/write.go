// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/erraggy/oasdocs/internal/fileutil"
	"github.com/erraggy/oasdocs/internal/pathutil"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteFile replaces the file at path with data in a single rename, so readers
// never see a partial document. Symlinks are refused. New files get
// fileutil.OwnerReadWrite; existing files keep their mode. It returns the
// absolute path written.
func WriteFile(path string, data []byte) (string, error) {
	abs, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return "", err
	}
	existed := fileutil.Exists(abs)
	if err := atomic.WriteFile(abs, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("cliutil: writing %s: %w", abs, err)
	}
	if !existed {
		if err := os.Chmod(abs, fileutil.OwnerReadWrite); err != nil {
			return "", fmt.Errorf("cliutil: setting permissions on %s: %w", abs, err)
		}
	}
	return abs, nil
}
