package oxhugo

import (
	"regexp"
	"strings"
)

// Front-matter fields that exist only to drive pandoc and must not leak
// into the final document: nocite (cite-without-marker list) and csl
// (citation style selector). Matched exactly at line start in either the
// "field: " (YAML) or "field = " (TOML) form.
var pandocMetaFieldRe = regexp.MustCompile(`^(nocite|csl)(:| =)`)

// RemovePandocMetaFields returns the front-matter block with every
// pandoc-specific metadata line removed. Unrelated lines keep their
// order; the input is not modified.
func RemovePandocMetaFields(frontMatter string) string {
	lines := strings.Split(frontMatter, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if pandocMetaFieldRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// yamlFence delimits a YAML front-matter block on its own line.
const yamlFence = "---"

// ExtractYAMLFrontMatter returns the leading fenced YAML block of
// content, fence lines included, and whether one was found.
func ExtractYAMLFrontMatter(content string) (string, bool) {
	if !strings.HasPrefix(content, yamlFence+"\n") {
		return "", false
	}
	rest := content[len(yamlFence)+1:]
	end := strings.Index(rest, "\n"+yamlFence+"\n")
	if end < 0 {
		return "", false
	}
	// opening fence + body + closing fence, trailing newline included
	return content[:len(yamlFence)+1+end+len(yamlFence)+2], true
}

// StripYAMLFrontMatter removes a leading fenced YAML block from content.
// Content without a leading fence, or with an unclosed one, is returned
// unchanged.
func StripYAMLFrontMatter(content string) string {
	block, ok := ExtractYAMLFrontMatter(content)
	if !ok {
		return content
	}
	return content[len(block):]
}
