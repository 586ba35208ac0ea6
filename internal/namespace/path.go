package namespace

import (
	"strings"
)

const separator = "/"

// splitPath breaks p into its non-empty segments. Repeated and trailing
// separators collapse; "." and ".." are ordinary names.
func splitPath(p string) []string {
	raw := strings.Split(p, separator)
	segments := raw[:0]
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, separator)
}

// joinCursor appends a relative path to the cursor as plain text.
func joinCursor(cursor, p string) string {
	return strings.TrimRight(cursor, separator) + separator + p
}

// normalize returns the canonical absolute form of an absolute path.
func normalize(p string) string {
	return separator + strings.Join(splitPath(p), separator)
}

// splitLeaf separates the final component of p from the directory holding it.
// A bare name lives in the cursor directory; a name directly under a leading
// separator lives in the root.
func splitLeaf(cursor, p string) (parent, leaf string) {
	idx := strings.LastIndex(p, separator)
	switch {
	case idx < 0:
		return cursor, p
	case idx == 0:
		return separator, p[1:]
	default:
		return p[:idx], p[idx+1:]
	}
}
