// Package fileutil holds file permission modes shared by the writers.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for document output files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// Exists reports whether path names an existing file or directory. Symlinks are
// not followed.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
