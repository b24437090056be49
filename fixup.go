package oxhugo

import (
	"fmt"
	"regexp"
	"strings"
)

// Precompiled patterns for the pandoc output fixups.
var (
	// Hugo shortcodes come back escaped from pandoc as {{\< name \>}},
	// possibly folded across lines.
	escapedShortcodeRe = regexp.MustCompile(`(?s)\{\{\\<(.+?)\\>\}\}`)
	innerWhitespaceRe  = regexp.MustCompile(`\s+`)

	// Pandoc wraps each bibliography entry in a fenced div keyed by the
	// citation id, and the whole references list in a #refs div. Extra
	// pandoc classes after the id are tolerated.
	refDivOpenRe      = regexp.MustCompile(`(?m)^::: \{#ref-([^ }]+)[^}]*\}[ \t]*$`)
	refsSectionOpenRe = regexp.MustCompile(`(?m)^::: \{#refs \.references[^}]*\}[ \t]*$`)
	fencedDivCloseRe  = regexp.MustCompile(`(?m)^:::[ \t]*$`)
)

// divPlaceholder is an empty element nested right after each opening
// div; Hugo's markdown renderer mishandles a div that starts with a
// block-level element otherwise.
const divPlaceholder = "  <div></div>"

// FixPandocOutput rewrites pandoc's markdown dialect into Hugo-ready
// markup: shortcodes are unescaped, per-reference divs and the
// references section are converted from fenced-div syntax to HTML. Pass
// order matters: per-reference divs must be rewritten before the section
// wrapper so every ":::" closer pairs with the nearest unconsumed
// opener.
func FixPandocOutput(content string, headingOffset int) (string, error) {
	content = UnescapeShortcodes(content)
	content, err := RewriteReferenceDivs(content)
	if err != nil {
		return "", err
	}
	return RewriteReferencesSection(content, headingOffset)
}

// UnescapeShortcodes rewrites pandoc-escaped Hugo shortcodes back to
// their canonical form, collapsing any internal whitespace runs (pandoc
// may fold a shortcode across lines) to single spaces.
func UnescapeShortcodes(content string) string {
	return escapedShortcodeRe.ReplaceAllStringFunc(content, func(match string) string {
		inner := escapedShortcodeRe.FindStringSubmatch(match)[1]
		inner = strings.TrimSpace(innerWhitespaceRe.ReplaceAllString(inner, " "))
		return "{{< " + inner + " >}}"
	})
}

// RewriteReferenceDivs converts every "::: {#ref-<id>}" fenced div into
// an HTML div. A single left-to-right scan pairs each opener with the
// next ":::"-only line and advances past the replacement, so rewritten
// text is never re-matched. An opener without a closer is malformed
// pandoc output and fails rather than consuming unrelated content.
func RewriteReferenceDivs(content string) (string, error) {
	var b strings.Builder
	cursor := 0

	for {
		loc := refDivOpenRe.FindStringSubmatchIndex(content[cursor:])
		if loc == nil {
			break
		}
		openStart, openEnd := cursor+loc[0], cursor+loc[1]
		id := content[cursor+loc[2] : cursor+loc[3]]

		closeLoc := fencedDivCloseRe.FindStringIndex(content[openEnd:])
		if closeLoc == nil {
			return "", fmt.Errorf("%w: ref-%s", ErrUnclosedRefDiv, id)
		}
		closeStart, closeEnd := openEnd+closeLoc[0], openEnd+closeLoc[1]

		b.WriteString(content[cursor:openStart])
		fmt.Fprintf(&b, "<div id=\"ref-%s\">\n%s\n", id, divPlaceholder)
		b.WriteString(content[openEnd:closeStart])
		b.WriteString("</div>")
		cursor = closeEnd
	}

	b.WriteString(content[cursor:])
	return b.String(), nil
}

// RewriteReferencesSection converts the single "::: {#refs .references}"
// wrapper into a synthesized heading plus an HTML div. The heading gets
// headingOffset+1 "#" markers, the fixed text "References" and a fixed
// anchor. Content without a references section is returned unchanged.
func RewriteReferencesSection(content string, headingOffset int) (string, error) {
	loc := refsSectionOpenRe.FindStringIndex(content)
	if loc == nil {
		return content, nil
	}
	openStart, openEnd := loc[0], loc[1]

	closeLoc := fencedDivCloseRe.FindStringIndex(content[openEnd:])
	if closeLoc == nil {
		return "", ErrUnclosedRefsSection
	}
	closeStart, closeEnd := openEnd+closeLoc[0], openEnd+closeLoc[1]

	heading := strings.Repeat("#", headingOffset+1) + " References {#references}"

	var b strings.Builder
	b.WriteString(content[:openStart])
	b.WriteString(heading + "\n\n")
	b.WriteString("<div id=\"refs\">\n" + divPlaceholder + "\n")
	b.WriteString(content[openEnd:closeStart])
	b.WriteString("</div> <!-- ending references -->")
	b.WriteString(content[closeEnd:])
	return b.String(), nil
}
