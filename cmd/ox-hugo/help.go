package main

import (
	"fmt"
	"io"
)

// printUsage writes CLI usage to w.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, `ox-hugo - citation post-processing for exported Hugo documents

Usage:
  ox-hugo [flags] <exported-file>...
  ox-hugo --doctor

Resolves pandoc citation keys in exported markdown files against
bibliography databases and rewrites each file in place. Files without
citations are left alone or get their native front matter restored.

Flags:
  -c, --config string        config file name or path
      --citations            enable pandoc citation processing
  -b, --bibliography string  bibliography files (comma separated), overrides config
      --front-matter string  file holding the native front-matter block
      --fm-format string     native front-matter format: toml, yaml
      --offset int           heading level offset for the References heading
      --pandoc string        pandoc executable name or path
  -w, --workers int          parallel workers for batch processing (0 = auto)
      --doctor               check pandoc availability and exit
      --version              print version and exit
  -q, --quiet                only show errors
  -v, --verbose              show detailed timing

Examples:
  ox-hugo --citations -b refs.bib content/posts/my-post.md
  ox-hugo -c ox-hugo --front-matter post.toml content/posts/my-post.md
  ox-hugo --citations -b refs.bib -w 4 content/posts/*.md
`)
}
