package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath returns path as a clean absolute path, refusing existing
// symlinks so a write cannot be redirected elsewhere. Missing paths are fine.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	}
	return abs, nil
}
