package main

import (
	"errors"
	"os"

	oxhugo "github.com/loochao/ox-hugo"
	"github.com/loochao/ox-hugo/internal/config"
)

// Exit codes for the ox-hugo CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitPandoc  = 4 // Pandoc missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Pandoc errors (exit 4)
	if errors.Is(err, oxhugo.ErrPandocNotFound) ||
		errors.Is(err, oxhugo.ErrPandocExit) {
		return ExitPandoc
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, oxhugo.ErrBibliographyNotFound) ||
		errors.Is(err, ErrReadFrontMatter) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, config.ErrInvalidOffset) ||
		errors.Is(err, oxhugo.ErrEmptyOutfile) ||
		errors.Is(err, oxhugo.ErrInvalidHeadingOffset) ||
		errors.Is(err, oxhugo.ErrInvalidFrontMatterFormat) ||
		errors.Is(err, ErrNoFrontMatter) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
