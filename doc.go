// Package oxhugo post-processes Markdown documents exported for the Hugo
// static site generator, resolving pandoc citation keys against one or
// more bibliography files.
//
// # Quick Start
//
// Create a service and process an exported file in place:
//
//	svc := oxhugo.New()
//	result, err := svc.Process(ctx, &oxhugo.ExportContext{
//	    OutfilePath:       "content/posts/my-post.md",
//	    FrontMatter:       frontMatter,
//	    FrontMatterFormat: oxhugo.FormatTOML,
//	    Bibliography:      "refs.bib",
//	    PandocCitations:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The result reports what happened (skipped, front matter restored, or
// citations resolved) and carries pandoc's diagnostics when any were
// emitted.
//
// # Pipeline
//
// Process runs these stages for each document:
//
//  1. Citation detection (nocite front-matter field or @key tokens in the body)
//  2. Bibliography resolution (absolute paths, deduplicated, must exist)
//  3. Pandoc invocation (org -> markdown with citations expanded inline)
//  4. Front-matter filtering (pandoc-only fields removed)
//  5. Markup fixups (shortcode unescaping, reference div rewriting,
//     references-section heading synthesis)
//
// Documents without citations are either left untouched or, when the
// site uses TOML front matter, rebuilt with the native front-matter
// block in place of the YAML block the exporter wrote for pandoc.
//
// # Requirements
//
// Citation resolution shells out to pandoc, which must be on PATH (or
// named via WithPandocPath). Each invocation is blocking with no
// timeout; a hung pandoc blocks the caller.
package oxhugo
