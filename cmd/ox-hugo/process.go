package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	oxhugo "github.com/loochao/ox-hugo"
	"github.com/loochao/ox-hugo/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoFrontMatter      = errors.New("cannot determine front-matter block")
	ErrReadFrontMatter    = errors.New("failed to read front-matter file")
)

// logFilePermissions: rw-r--r--, diagnostics are not sensitive.
const logFilePermissions = 0o644

// FileResult holds the outcome of processing a single exported file.
type FileResult struct {
	Path     string
	Action   oxhugo.Action
	LogPath  string
	Err      error
	Duration time.Duration
}

// run dispatches between doctor mode and document processing.
func run(flags *cliFlags, files []string) error {
	if flags.doctor {
		return runDoctor(os.Stdout, flags)
	}
	return runProcess(context.Background(), flags, files, os.Stderr)
}

// runProcess post-processes the given exported files, fanning out over a
// bounded number of workers for batches.
func runProcess(ctx context.Context, flags *cliFlags, files []string, w io.Writer) error {
	if len(files) == 0 {
		return ErrNoInput
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	results := processFiles(ctx, flags, cfg, files)

	var firstErr error
	for _, res := range results {
		report(w, flags, res)
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}
	return firstErr
}

// mergeFlags applies document-level flags over the project config
// (document scope overrides the enclosing project scope). The
// bibliography flag is not merged here: it stays a distinct override so
// the pipeline can give it precedence over declared values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.document.citations {
		cfg.PandocCitations = true
	}
	if flags.document.format != "" {
		cfg.FrontMatterFormat = flags.document.format
	}
	if flags.document.offset != offsetSentinel {
		cfg.HeadingOffset = flags.document.offset
	}
	if flags.document.pandoc != "" {
		cfg.Pandoc = flags.document.pandoc
	}
}

// processFiles fans the batch out over workers. Each worker owns its
// Service, so pandoc logs never interleave between in-flight pipelines.
func processFiles(ctx context.Context, flags *cliFlags, cfg *config.Config, files []string) []FileResult {
	workers := resolveWorkers(flags.workers, len(files))
	jobs := make(chan int)
	results := make([]FileResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc := oxhugo.New(oxhugo.WithPandocPath(cfg.Pandoc))
			for j := range jobs {
				results[j] = processFile(ctx, svc, flags, cfg, files[j])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// processFile runs the pipeline for one file and persists any pandoc
// diagnostics next to it.
func processFile(ctx context.Context, svc *oxhugo.Service, flags *cliFlags, cfg *config.Config, path string) FileResult {
	start := time.Now()
	res := FileResult{Path: path}

	ectx, err := buildExportContext(flags, cfg, path)
	if err != nil {
		res.Err = err
		return res
	}

	out, err := svc.Process(ctx, ectx)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	res.Action = out.Action
	if out.Log != "" {
		logPath := path + ".pandoc.log"
		if werr := os.WriteFile(logPath, []byte(out.Log), logFilePermissions); werr == nil {
			res.LogPath = logPath
		}
	}
	return res
}

// buildExportContext assembles the per-document pipeline input. The
// native front-matter block comes from --front-matter when given;
// otherwise, for YAML sites, from the draft's own leading block. TOML
// sites must pass --front-matter since the draft only carries the YAML
// block written for pandoc.
func buildExportContext(flags *cliFlags, cfg *config.Config, path string) (*oxhugo.ExportContext, error) {
	format := strings.ToLower(cfg.FrontMatterFormat)

	var frontMatter string
	switch {
	case flags.document.frontMatter != "":
		data, err := os.ReadFile(flags.document.frontMatter) // #nosec G304 -- path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadFrontMatter, err)
		}
		frontMatter = string(data)
	case format == oxhugo.FormatYAML:
		data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return nil, fmt.Errorf("reading exported file: %w", err)
		}
		block, ok := oxhugo.ExtractYAMLFrontMatter(string(data))
		if !ok {
			return nil, fmt.Errorf("%w: %s has no leading YAML block", ErrNoFrontMatter, path)
		}
		frontMatter = block
	default:
		return nil, fmt.Errorf("%w: %s site uses %s front matter, pass --front-matter", ErrNoFrontMatter, path, format)
	}

	return &oxhugo.ExportContext{
		OutfilePath:          path,
		FrontMatter:          frontMatter,
		FrontMatterFormat:    format,
		Bibliography:         cfg.Bibliography,
		BibliographyOverride: flags.document.bibliography,
		HeadingOffset:        cfg.HeadingOffset,
		PandocCitations:      cfg.PandocCitations,
	}, nil
}

// report prints the outcome of one file, honoring --quiet and --verbose.
func report(w io.Writer, flags *cliFlags, res FileResult) {
	if res.Err != nil {
		fmt.Fprintf(w, "error: %v\n", res.Err)
		return
	}
	if flags.common.quiet {
		return
	}

	switch res.Action {
	case oxhugo.ActionConverted:
		fmt.Fprintf(w, "%s: citations resolved", res.Path)
	case oxhugo.ActionNormalized:
		fmt.Fprintf(w, "%s: front matter restored", res.Path)
	case oxhugo.ActionNoBibliography:
		fmt.Fprintf(w, "%s: citations found but no bibliography declared, pandoc not run", res.Path)
	default:
		fmt.Fprintf(w, "%s: no citation processing needed", res.Path)
	}
	if flags.common.verbose {
		fmt.Fprintf(w, " (%s)", res.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(w)

	if res.LogPath != "" {
		fmt.Fprintf(w, "%s: pandoc diagnostics in %s\n", res.Path, res.LogPath)
	}
}
