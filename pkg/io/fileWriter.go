package io

import (
	"fmt"
	"os"
	"path/filepath"
)

// MakeDirForFile creates all directories needed to hold filePath, treating
// purpose as a human-readable label for error messages.
func MakeDirForFile(filePath string, purpose string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create dir for %s: %w", purpose, err)
	}
	return nil
}
