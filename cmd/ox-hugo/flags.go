package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// offsetSentinel detects if --offset was explicitly set. Since 0 is a
// valid offset, an out-of-range sentinel marks "inherit from config".
const offsetSentinel = -1

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds per-document export properties. Each overrides the
// corresponding project-config value.
type documentFlags struct {
	citations    bool
	bibliography string
	frontMatter  string
	format       string
	offset       int
	pandoc       string
}

// cliFlags holds all flags for the ox-hugo CLI.
type cliFlags struct {
	common   commonFlags
	document documentFlags
	workers  int
	doctor   bool
	version  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds per-document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.citations, "citations", false, "enable pandoc citation processing")
	fs.StringVarP(&f.bibliography, "bibliography", "b", "", "bibliography files (comma separated), overrides config")
	fs.StringVar(&f.frontMatter, "front-matter", "", "file holding the native front-matter block")
	fs.StringVar(&f.format, "fm-format", "", "native front-matter format: toml, yaml")
	fs.IntVar(&f.offset, "offset", offsetSentinel, "heading level offset for the References heading")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable name or path")
}

// parseFlags parses CLI flags and returns the positional arguments (the
// exported files to process).
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("ox-hugo", flag.ContinueOnError)
	f := &cliFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for batch processing (0 = auto)")
	fs.BoolVar(&f.doctor, "doctor", false, "check pandoc availability and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
