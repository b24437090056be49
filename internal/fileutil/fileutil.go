// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// TempSibling creates an empty uniquely-named file in the same directory
// as path, keeping path's base name with a random infix and the given
// extension (including its leading dot). Returns the new file's path;
// the caller owns the file and is responsible for removing it.
func TempSibling(path, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	tmpFile, err := os.CreateTemp(dir, base+"-*"+extension)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	name := tmpFile.Name()
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return name, nil
}

// ValidateExtension checks that the extension is safe for use in temp
// file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// IsFilePath returns true if the string looks like a file path rather
// than a name. A string containing path separators (/, \) is treated as
// a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
