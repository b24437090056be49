package oxhugo

import "regexp"

// citationKeyChars is the character class pandoc accepts inside a
// citation key after the leading letter/digit/underscore. The "-" must
// stay last so the class stays literal.
const citationKeyChars = `A-Za-z0-9_:.#$%&+?<>~/-`

var (
	// A citation key is an optional "-" (suppress author mention), "@",
	// one letter/digit/underscore, then any run of key characters. The
	// character before the key must not itself be a key character, so
	// "user@example.com" and path-like strings do not match.
	citationKeyRe = regexp.MustCompile(`(?:^|[^` + citationKeyChars + `])-?@[A-Za-z0-9_][` + citationKeyChars + `]*`)

	// nocite names citations to include in the references list without
	// an in-text marker; "nocite: " is the YAML form, "nocite = " the
	// TOML form.
	nociteRe = regexp.MustCompile(`(?m)^nocite(:| =) `)
)

// DetectCitations reports whether the exported document needs pandoc
// citation processing: either the front matter forces entries in via a
// nocite field, or the body contains at least one citation key.
func DetectCitations(frontMatter, body string) bool {
	return HasNocite(frontMatter) || HasCitationKeys(body)
}

// HasNocite reports whether the front-matter block declares a nocite
// field.
func HasNocite(frontMatter string) bool {
	return nociteRe.MatchString(frontMatter)
}

// HasCitationKeys reports whether the content contains at least one
// pandoc citation key token.
func HasCitationKeys(content string) bool {
	return citationKeyRe.MatchString(content)
}
