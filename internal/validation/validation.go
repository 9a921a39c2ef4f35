// Package validation checks user-supplied paths before they are used.
package validation

import (
	"fmt"
	"os"
)

// IsReadableFile checks that path exists and is a regular file.
func IsReadableFile(path string) error {
	if path == "" {
		return fmt.Errorf("no file given")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}

// IsValidOutputPath checks that path can be written as a file: it must not
// name an existing directory.
func IsValidOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", path)
	}
	return nil
}

// IsValidFilePermissions checks that a sensitive file, such as a service
// account key, is not readable by others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.Perm().String())
	}
	return nil
}
