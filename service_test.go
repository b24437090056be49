package oxhugo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakePandoc simulates a pandoc run by writing converted content to the
// path following the -o argument.
type fakePandoc struct {
	converted string
	err       error
	calls     [][]string
}

func (f *fakePandoc) Run(name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "pandoc: citeproc error\n", f.err
	}
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(f.converted), 0o644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func newTestService(t *testing.T, runner CommandRunner) *Service {
	t.Helper()
	svc := New(WithRunner(runner))
	svc.lookPath = func(string) (string, error) { return "/usr/bin/pandoc", nil }
	return svc
}

func writeDraft(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}
	return path
}

func readDraft(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read draft: %v", err)
	}
	return string(raw)
}

func TestService_Process_Disabled(t *testing.T) {
	draft := "---\ntitle: X\n---\n\nSee [@doe2021].\n"
	path := writeDraft(t, draft)
	fake := &fakePandoc{}
	svc := newTestService(t, fake)

	res, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		PandocCitations:   false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != ActionSkipped {
		t.Errorf("expected ActionSkipped, got %q", res.Action)
	}
	if got := readDraft(t, path); got != draft {
		t.Errorf("draft must not be touched when processing is disabled:\ngot:  %q\nwant: %q", got, draft)
	}
	if len(fake.calls) != 0 {
		t.Errorf("pandoc must not run, got %d calls", len(fake.calls))
	}
}

func TestService_Process_NoCitations_YAMLSite(t *testing.T) {
	draft := "---\ntitle: X\n---\n\nPlain body, mail user@example.com.\n"
	path := writeDraft(t, draft)
	svc := newTestService(t, &fakePandoc{})

	res, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		PandocCitations:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != ActionSkipped {
		t.Errorf("expected ActionSkipped, got %q", res.Action)
	}
	if got := readDraft(t, path); got != draft {
		t.Errorf("draft with final front matter must stay byte-identical:\ngot:  %q\nwant: %q", got, draft)
	}
}

func TestService_Process_NoCitations_TOMLSite(t *testing.T) {
	path := writeDraft(t, "---\ntitle: X\n---\n\nPlain body.\n")
	svc := newTestService(t, &fakePandoc{})

	res, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "+++\ntitle = \"X\"\n+++\n",
		FrontMatterFormat: FormatTOML,
		PandocCitations:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != ActionNormalized {
		t.Errorf("expected ActionNormalized, got %q", res.Action)
	}
	want := "+++\ntitle = \"X\"\n+++\n\nPlain body.\n"
	if got := readDraft(t, path); got != want {
		t.Errorf("native front matter should replace the pandoc block:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestService_Process_NoCitations_TOMLSite_Rerun(t *testing.T) {
	path := writeDraft(t, "---\ntitle: X\n---\n\nPlain body.\n")
	svc := newTestService(t, &fakePandoc{})

	ectx := &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "+++\ntitle = \"X\"\n+++\n",
		FrontMatterFormat: FormatTOML,
		PandocCitations:   true,
	}

	first, err := svc.Process(context.Background(), ectx)
	if err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}
	if first.Action != ActionNormalized {
		t.Errorf("expected ActionNormalized on first run, got %q", first.Action)
	}
	want := readDraft(t, path)

	second, err := svc.Process(context.Background(), ectx)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if second.Action != ActionSkipped {
		t.Errorf("expected ActionSkipped on second run, got %q", second.Action)
	}
	if got := readDraft(t, path); got != want {
		t.Errorf("second run must not change the draft:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestService_Process_NoBibliography(t *testing.T) {
	draft := "---\ntitle: X\n---\n\nSee [@doe2021].\n"
	path := writeDraft(t, draft)
	fake := &fakePandoc{}
	svc := newTestService(t, fake)

	res, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		PandocCitations:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != ActionNoBibliography {
		t.Errorf("expected ActionNoBibliography, got %q", res.Action)
	}
	if got := readDraft(t, path); got != draft {
		t.Errorf("draft must not be touched without a bibliography:\ngot:  %q\nwant: %q", got, draft)
	}
	if len(fake.calls) != 0 {
		t.Errorf("pandoc must not run without a bibliography, got %d calls", len(fake.calls))
	}
}

func TestService_Process_Converted(t *testing.T) {
	bibDir := t.TempDir()
	bib := writeBibFile(t, bibDir, "refs.bib")

	path := writeDraft(t, "---\ntitle: X\nnocite: '[@doe2021]'\n---\n\nSee [@doe2021].\n")
	fake := &fakePandoc{
		converted: "See (Doe 2021).\n\n" +
			"::: {#refs .references}\n" +
			"::: {#ref-doe2021}\n" +
			"Doe, J. (2021).\n" +
			":::\n" +
			":::\n",
	}
	svc := newTestService(t, fake)

	res, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "+++\ntitle = \"X\"\nnocite = [\"@doe2021\"]\n+++\n",
		FrontMatterFormat: FormatTOML,
		Bibliography:      bib,
		PandocCitations:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != ActionConverted {
		t.Errorf("expected ActionConverted, got %q", res.Action)
	}

	want := "+++\ntitle = \"X\"\n+++\n" +
		"See (Doe 2021).\n\n" +
		"# References {#references}\n\n" +
		"<div id=\"refs\">\n  <div></div>\n\n" +
		"<div id=\"ref-doe2021\">\n  <div></div>\n\n" +
		"Doe, J. (2021).\n" +
		"</div>\n" +
		"</div> <!-- ending references -->\n"
	if got := readDraft(t, path); got != want {
		t.Errorf("converted draft mismatch:\ngot:  %q\nwant: %q", got, want)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected one pandoc invocation, got %d", len(fake.calls))
	}
	var hasBib bool
	for _, arg := range fake.calls[0] {
		if arg == "--bibliography="+bib {
			hasBib = true
		}
	}
	if !hasBib {
		t.Errorf("expected --bibliography=%s in %v", bib, fake.calls[0])
	}

	// The pandoc output file is merged and removed on success.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to list draft directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the draft to remain, got %d entries", len(entries))
	}
}

func TestService_Process_BibliographyOverride(t *testing.T) {
	bibDir := t.TempDir()
	docBib := writeBibFile(t, bibDir, "doc.bib")
	override := writeBibFile(t, bibDir, "override.bib")

	path := writeDraft(t, "---\ntitle: X\n---\n\nSee [@doe2021].\n")
	fake := &fakePandoc{converted: "See (Doe 2021).\n"}
	svc := newTestService(t, fake)

	_, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:          path,
		FrontMatter:          "---\ntitle: X\n---\n",
		FrontMatterFormat:    FormatYAML,
		Bibliography:         docBib,
		BibliographyOverride: override,
		PandocCitations:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := strings.Join(fake.calls[0], " ")
	if !strings.Contains(args, "--bibliography="+override) {
		t.Errorf("expected override bibliography in %v", fake.calls[0])
	}
	if strings.Contains(args, "--bibliography="+docBib) {
		t.Errorf("document bibliography must be shadowed by the override, got %v", fake.calls[0])
	}
}

func TestService_Process_PandocMissing(t *testing.T) {
	path := writeDraft(t, "---\ntitle: X\n---\n\nSee [@doe2021].\n")
	svc := New(WithRunner(&fakePandoc{}))
	svc.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	_, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		PandocCitations:   true,
	})
	if !errors.Is(err, ErrPandocNotFound) {
		t.Errorf("expected ErrPandocNotFound, got %v", err)
	}
}

func TestService_Process_PandocFailure(t *testing.T) {
	bibDir := t.TempDir()
	bib := writeBibFile(t, bibDir, "refs.bib")

	draft := "---\ntitle: X\n---\n\nSee [@doe2021].\n"
	path := writeDraft(t, draft)
	fake := &fakePandoc{err: errors.New("exit status 1")}
	svc := newTestService(t, fake)

	_, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		Bibliography:      bib,
		PandocCitations:   true,
	})
	if !errors.Is(err, ErrPandocExit) {
		t.Fatalf("expected ErrPandocExit, got %v", err)
	}
	if got := readDraft(t, path); got != draft {
		t.Errorf("draft must stay intact after a pandoc failure:\ngot:  %q\nwant: %q", got, draft)
	}

	// The output file stays behind for inspection.
	entries, readErr := os.ReadDir(filepath.Dir(path))
	if readErr != nil {
		t.Fatalf("failed to list draft directory: %v", readErr)
	}
	if len(entries) != 2 {
		t.Errorf("expected the draft and the leftover pandoc output, got %d entries", len(entries))
	}
}

func TestService_Process_MissingBibliography(t *testing.T) {
	path := writeDraft(t, "---\ntitle: X\n---\n\nSee [@doe2021].\n")
	svc := newTestService(t, &fakePandoc{})

	_, err := svc.Process(context.Background(), &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		Bibliography:      filepath.Join(t.TempDir(), "missing.bib"),
		PandocCitations:   true,
	})
	if !errors.Is(err, ErrBibliographyNotFound) {
		t.Errorf("expected ErrBibliographyNotFound, got %v", err)
	}
}

func TestService_Process_InvalidContext(t *testing.T) {
	path := writeDraft(t, "body\n")
	svc := newTestService(t, &fakePandoc{})

	tests := []struct {
		name    string
		ectx    *ExportContext
		wantErr error
	}{
		{
			name:    "empty outfile path",
			ectx:    &ExportContext{FrontMatterFormat: FormatTOML},
			wantErr: ErrEmptyOutfile,
		},
		{
			name:    "negative heading offset",
			ectx:    &ExportContext{OutfilePath: path, FrontMatterFormat: FormatTOML, HeadingOffset: -1},
			wantErr: ErrInvalidHeadingOffset,
		},
		{
			name:    "unknown front matter format",
			ectx:    &ExportContext{OutfilePath: path, FrontMatterFormat: "json"},
			wantErr: ErrInvalidFrontMatterFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Process(context.Background(), tt.ectx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestService_Process_CanceledContext(t *testing.T) {
	path := writeDraft(t, "---\ntitle: X\n---\n\nSee [@doe2021].\n")
	fake := &fakePandoc{}
	svc := newTestService(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, &ExportContext{
		OutfilePath:       path,
		FrontMatter:       "---\ntitle: X\n---\n",
		FrontMatterFormat: FormatYAML,
		PandocCitations:   true,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("pandoc must not run after cancellation, got %d calls", len(fake.calls))
	}
}

func TestWithPandocPath_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty path")
		}
	}()
	WithPandocPath("")
}
