package oxhugo

import "fmt"

// Front-matter format constants.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// ExportContext carries everything the pipeline needs to post-process one
// exported document. It is constructed once by the caller and only read
// by the pipeline; the draft file named by OutfilePath is the single
// mutable resource.
type ExportContext struct {
	// OutfilePath is the draft file written by the exporter. It is
	// overwritten in place when processing changes its content.
	OutfilePath string

	// FrontMatter is the document's native front-matter block in final
	// form. For YAML sites this equals the block already at the top of
	// the draft; for TOML sites it replaces the YAML block the exporter
	// wrote for pandoc.
	FrontMatter string

	// FrontMatterFormat is FormatTOML or FormatYAML.
	FrontMatterFormat string

	// Bibliography holds bibliography files declared at the document
	// level, comma or newline separated (declarations are additive).
	Bibliography string

	// BibliographyOverride is an inheritable per-document override. When
	// non-empty it takes precedence over Bibliography.
	BibliographyOverride string

	// HeadingOffset shifts the nesting depth of headings produced for
	// the document; the synthesized "References" heading gets
	// HeadingOffset+1 markers. Must be >= 0.
	HeadingOffset int

	// PandocCitations enables the pipeline. When false the document is
	// never touched.
	PandocCitations bool
}

// Validate checks that the context is usable by Process.
func (e *ExportContext) Validate() error {
	if e.OutfilePath == "" {
		return ErrEmptyOutfile
	}
	if e.HeadingOffset < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHeadingOffset, e.HeadingOffset)
	}
	switch e.FrontMatterFormat {
	case FormatTOML, FormatYAML:
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidFrontMatterFormat, e.FrontMatterFormat, FormatTOML, FormatYAML)
	}
	return nil
}

// rawBibliography returns the raw bibliography specification, giving the
// per-document override precedence over document-level declarations.
func (e *ExportContext) rawBibliography() string {
	if e.BibliographyOverride != "" {
		return e.BibliographyOverride
	}
	return e.Bibliography
}

// Action identifies what Process did with a document.
type Action string

// Actions reported by Process.
const (
	// ActionSkipped: the pipeline was disabled, or the document needs no
	// citation processing and its front matter is already in final form.
	ActionSkipped Action = "skipped"

	// ActionNormalized: no citations, but the native front matter was
	// restored in place of the YAML block written for pandoc.
	ActionNormalized Action = "normalized"

	// ActionNoBibliography: citations were detected but no bibliography
	// is declared, so pandoc was not run.
	ActionNoBibliography Action = "no-bibliography"

	// ActionConverted: pandoc ran and the file was rewritten with
	// citations expanded.
	ActionConverted Action = "converted"
)

// Result reports the outcome of processing one document.
type Result struct {
	Action Action

	// Log holds pandoc's combined stdout and stderr from a successful
	// run. Empty when pandoc emitted nothing (or never ran); callers
	// should surface non-empty logs and discard empty ones.
	Log string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	pandocPath string
	runner     CommandRunner
}

// defaultPandocPath is used when no executable is specified.
const defaultPandocPath = "pandoc"

// WithPandocPath sets the pandoc executable name or path.
// Panics if path is empty (programmer error).
func WithPandocPath(path string) Option {
	if path == "" {
		panic("oxhugo: WithPandocPath path must be non-empty")
	}
	return func(s *Service) {
		s.cfg.pandocPath = path
	}
}

// WithRunner replaces the command runner, mainly for tests.
func WithRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.cfg.runner = r
	}
}
