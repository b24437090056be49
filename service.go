package oxhugo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// outfilePermissions: rw-r--r--, matching what static site sources use.
const outfilePermissions = 0o644

// Service orchestrates the citation post-processing pipeline. Each call
// to Process handles one document from start to finish; the pipeline is
// sequential and the pandoc subprocess is blocking.
type Service struct {
	cfg      serviceConfig
	invoker  *PandocInvoker
	lookPath func(string) (string, error)
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithPandocPath).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:      serviceConfig{pandocPath: defaultPandocPath},
		lookPath: exec.LookPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	runner := s.cfg.runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	s.invoker = &PandocInvoker{Runner: runner, Path: s.cfg.pandocPath}

	return s
}

// Process runs the full decision flow for one exported document: skip,
// restore the native front matter, or resolve citations through pandoc
// and rewrite the file in place. The context is checked between stages;
// the pandoc invocation itself is not cancellable.
func (s *Service) Process(ctx context.Context, ectx *ExportContext) (*Result, error) {
	if err := ectx.Validate(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(ectx.OutfilePath) // #nosec G304 -- outfile path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("reading exported file: %w", err)
	}
	content := string(raw)

	if !ectx.PandocCitations {
		return &Result{Action: ActionSkipped}, nil
	}

	if !DetectCitations(ectx.FrontMatter, content) {
		return s.restoreFrontMatter(ectx, content)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if _, err := s.lookPath(s.invoker.Path); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPandocNotFound, s.invoker.Path)
	}

	bibliographies, err := ResolveBibliography(ectx.rawBibliography())
	if err != nil {
		return nil, err
	}
	if len(bibliographies) == 0 {
		return &Result{Action: ActionNoBibliography}, nil
	}

	outPath, log, err := s.invoker.Invoke(bibliographies, ectx.OutfilePath)
	if err != nil {
		return nil, err
	}

	converted, err := os.ReadFile(outPath) // #nosec G304 -- temp file created by this invocation
	if err != nil {
		return nil, fmt.Errorf("reading pandoc output: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Failures past this point leave the pandoc output file on disk for
	// inspection; it is only removed once its content has been merged.
	fixed, err := FixPandocOutput(string(converted), ectx.HeadingOffset)
	if err != nil {
		return nil, err
	}

	frontMatter := RemovePandocMetaFields(ectx.FrontMatter)
	if !strings.HasSuffix(frontMatter, "\n") {
		frontMatter += "\n"
	}

	if err := os.WriteFile(ectx.OutfilePath, []byte(frontMatter+fixed), outfilePermissions); err != nil {
		return nil, fmt.Errorf("writing exported file: %w", err)
	}
	_ = os.Remove(outPath)

	return &Result{Action: ActionConverted, Log: log}, nil
}

// restoreFrontMatter rebuilds the outfile with the native front-matter
// block when the draft still carries the YAML block written for pandoc.
// A document whose native format is already YAML, or that already begins
// with the native block, is left untouched, so re-running the rewrite is
// safe.
func (s *Service) restoreFrontMatter(ectx *ExportContext, content string) (*Result, error) {
	if ectx.FrontMatterFormat == FormatYAML {
		return &Result{Action: ActionSkipped}, nil
	}

	frontMatter := ectx.FrontMatter
	if !strings.HasSuffix(frontMatter, "\n") {
		frontMatter += "\n"
	}
	if strings.HasPrefix(content, frontMatter) {
		return &Result{Action: ActionSkipped}, nil
	}
	body := StripYAMLFrontMatter(content)

	if err := os.WriteFile(ectx.OutfilePath, []byte(frontMatter+body), outfilePermissions); err != nil {
		return nil, fmt.Errorf("writing exported file: %w", err)
	}
	return &Result{Action: ActionNormalized}, nil
}
