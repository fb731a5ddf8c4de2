package media

import (
	"strings"

	"github.com/fhuszti/event-medias-go/internal/model"
)

// SanitizeFilename drops every character outside [A-Za-z0-9.\-_].
// It never fails and sanitizing twice yields the same result.
func SanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, s)
}

// ImageObjectName builds the stored name of a normalised image: the original
// extension is removed before sanitizing and ext is appended afterwards.
func ImageObjectName(filename, ext, suffix string, unique bool) string {
	base := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		base = filename[:i]
	}
	return joinName(model.AssetKindImage, SanitizeFilename(base), ext, suffix, unique)
}

// VideoObjectName keeps the original extension through sanitizing.
func VideoObjectName(filename, suffix string, unique bool) string {
	safe := SanitizeFilename(filename)
	base, ext := safe, ""
	if i := strings.LastIndex(safe, "."); i >= 0 {
		base, ext = safe[:i], safe[i:]
	}
	if ext == "." {
		ext = ""
	}
	return joinName(model.AssetKindVideo, base, ext, suffix, unique)
}

// joinName appends suffix when unique is set. A base with nothing usable left
// after sanitizing always falls back to "<kind>-<suffix>".
func joinName(kind model.AssetKind, base, ext, suffix string, unique bool) string {
	switch {
	case strings.Trim(base, ".") == "":
		return string(kind) + "-" + suffix + ext
	case unique:
		return base + "-" + suffix + ext
	default:
		return base + ext
	}
}

// ObjectKey namespaces name under the kind's storage prefix.
func ObjectKey(kind model.AssetKind, name string) string {
	return kind.Prefix() + "/" + name
}
