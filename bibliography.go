package oxhugo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Bibliography files may be declared several times at the document level
// (newline separated) or supplied as a single comma-separated value.
var bibliographySeparatorRe = regexp.MustCompile(`[,\n]`)

// ResolveBibliography turns a raw bibliography specification into a
// validated list of canonical absolute paths, preserving first-seen
// order. Symlinks are resolved, so duplicate entries behind different
// names collapse to one. Every entry must exist on disk; a missing file
// fails naming the offending path. An empty specification yields an
// empty list.
func ResolveBibliography(raw string) ([]string, error) {
	pieces := bibliographySeparatorRe.Split(raw, -1)
	seen := make(map[string]struct{}, len(pieces))
	var paths []string

	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		abs, err := filepath.Abs(piece)
		if err != nil {
			return nil, fmt.Errorf("resolving bibliography path %q: %w", piece, err)
		}

		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrBibliographyNotFound, abs)
			}
			return nil, fmt.Errorf("resolving bibliography path %q: %w", piece, err)
		}

		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		paths = append(paths, resolved)
	}

	return paths, nil
}
