// internal/naming/naming.go
//
// This package holds slate's two on-disk naming contracts: the sanitized
// name derivation used for project folders, and the versioned-filename
// convention ({name}_v{###}.{ext}) shared with every external tool that
// reads a work directory. Both are pure string transforms; nothing in here
// touches the filesystem.

package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotVersioned reports a filename that does not follow the
// {name}_v{###}.{ext} convention.
var ErrNotVersioned = errors.New("naming: filename is not versioned")

// suffixLen covers "_v" plus three digits.
const suffixLen = 5

// Versioned is the decoded form of a versioned filename.
type Versioned struct {
	Name      string
	Version   int
	Extension string // without the leading dot
}

// Sanitize derives the on-disk identifier for a human-entered name:
// lowercased, ASCII alphanumerics kept, '_' and '-' collapse to '_',
// the Nordic vowels å/ä/ö transliterate, everything else is dropped.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '-':
			b.WriteByte('_')
		case r == 'å', r == 'ä':
			b.WriteByte('a')
		case r == 'ö':
			b.WriteByte('o')
		}
	}
	return b.String()
}

// Parse decodes the base name of path into its logical name, version and
// extension. The stem must be at least five characters long and end in
// "_v" followed by exactly three decimal digits; anything else fails with
// ErrNotVersioned.
func Parse(path string) (Versioned, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	ext = strings.TrimPrefix(ext, ".")

	// The length guard keeps the suffix slice below from underflowing.
	if len(stem) < suffixLen {
		return Versioned{}, fmt.Errorf("%w: %s", ErrNotVersioned, base)
	}

	suffix := stem[len(stem)-suffixLen:]
	if suffix[0] != '_' || suffix[1] != 'v' {
		return Versioned{}, fmt.Errorf("%w: %s", ErrNotVersioned, base)
	}
	version := 0
	for _, c := range []byte(suffix[2:]) {
		if c < '0' || c > '9' {
			return Versioned{}, fmt.Errorf("%w: %s", ErrNotVersioned, base)
		}
		version = version*10 + int(c-'0')
	}

	return Versioned{
		Name:      stem[:len(stem)-suffixLen],
		Version:   version,
		Extension: ext,
	}, nil
}

// Filename is the inverse of Parse for versions in [0, 999]. Versions of
// 1000 and above cannot be represented in three digits and are outside the
// convention.
func (v Versioned) Filename() string {
	return fmt.Sprintf("%s_%s.%s", v.Name, v.VersionLabel(), v.Extension)
}

// VersionLabel formats the version the way it appears on disk and in
// listings: v007.
func (v Versioned) VersionLabel() string {
	return fmt.Sprintf("v%03d", v.Version)
}
