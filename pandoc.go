package oxhugo

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/loochao/ox-hugo/internal/fileutil"
)

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	// Run executes the command and returns its combined stdout+stderr.
	Run(name string, args ...string) (output string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// PandocInvoker runs pandoc exactly once per pipeline execution to
// expand citations in an exported markdown file.
type PandocInvoker struct {
	Runner CommandRunner
	Path   string // pandoc executable name or path; defaults to "pandoc"
}

// pandocBaseArgs select org input (the draft is parsed as the authoring
// format, which is why Hugo shortcodes come back escaped) and markdown
// output with the citations extension disabled (so citations are
// expanded inline rather than left as pandoc citation syntax), simple
// tables replaced by pipe tables (Hugo's table dialect) and uniform ATX
// headings.
var pandocBaseArgs = []string{
	"-f", "org",
	"-t", "markdown-citations-simple_tables+pipe_tables",
	"--atx-headers",
}

// BuildArgs assembles the deterministic pandoc argument list: fixed base
// arguments, one --bibliography per entry in order, then the output and
// input paths.
func BuildArgs(bibliographies []string, outPath, inPath string) []string {
	args := make([]string, 0, len(pandocBaseArgs)+len(bibliographies)+3)
	args = append(args, pandocBaseArgs...)
	for _, bib := range bibliographies {
		args = append(args, "--bibliography="+bib)
	}
	args = append(args, "-o", outPath, inPath)
	return args
}

// Invoke runs pandoc synchronously and returns the path of the converted
// file along with pandoc's combined diagnostics for this invocation. On
// a non-zero exit the error carries the diagnostics and the converted
// file is left on disk for inspection.
func (p *PandocInvoker) Invoke(bibliographies []string, inPath string) (outPath, log string, err error) {
	name := p.Path
	if name == "" {
		name = defaultPandocPath
	}

	outPath, err = fileutil.TempSibling(inPath, ".md")
	if err != nil {
		return "", "", fmt.Errorf("creating pandoc output file: %w", err)
	}

	log, err = p.Runner.Run(name, BuildArgs(bibliographies, outPath, inPath)...)
	if err != nil {
		if diag := strings.TrimSpace(log); diag != "" {
			return outPath, log, fmt.Errorf("%w: %s", ErrPandocExit, diag)
		}
		return outPath, log, fmt.Errorf("%w: %v", ErrPandocExit, err)
	}
	return outPath, log, nil
}
