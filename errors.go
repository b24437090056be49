package oxhugo

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyOutfile             = errors.New("outfile path cannot be empty")
	ErrInvalidHeadingOffset     = errors.New("heading offset cannot be negative")
	ErrInvalidFrontMatterFormat = errors.New("invalid front-matter format")

	// Citation resolution errors.
	ErrPandocNotFound       = errors.New("pandoc executable not found")
	ErrPandocExit           = errors.New("pandoc exited with an error")
	ErrBibliographyNotFound = errors.New("bibliography file not found")

	// Fixup errors for malformed pandoc output.
	ErrUnclosedRefDiv      = errors.New("reference block has no closing ::: line")
	ErrUnclosedRefsSection = errors.New("references section has no closing ::: line")
)
