// Package packages holds the in-memory package ledger: the Package record
// and the ordered Packages store that enforces one record per name.
package packages

import (
	"fmt"
	"unicode/utf8"

	"github.com/agentstation/pkgdb/pkg/errors"
)

// Package is one registered package. Records are values; replace them
// wholesale rather than editing fields in place.
type Package struct {
	Name        string `json:"pkgname" yaml:"pkgname" plist:"pkgname"`          // Unique key, compared exactly
	Version     string `json:"version" yaml:"version" plist:"version"`          // Version string
	Description string `json:"short_desc" yaml:"short_desc" plist:"short_desc"` // One-line description
}

// String returns the "name-version" form used in status messages.
func (p Package) String() string {
	return p.Name + "-" + p.Version
}

// Validate reports the first empty field, or the first field that cannot
// be stored verbatim, as a ValidationError. Stored text must be valid
// UTF-8 made of characters an XML document can carry.
func (p Package) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"pkgname", p.Name},
		{"version", p.Version},
		{"short_desc", p.Description},
	} {
		if f.value == "" {
			return &errors.ValidationError{Field: f.name, Value: f.value, Message: "cannot be empty"}
		}
		if msg := checkText(f.value); msg != "" {
			return &errors.ValidationError{Field: f.name, Value: f.value, Message: msg}
		}
	}
	return nil
}

// checkText returns why s cannot be stored, or "".
func checkText(s string) string {
	if !utf8.ValidString(s) {
		return "must be valid UTF-8"
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Sprintf("contains unsupported character %U", r)
		}
	}
	return ""
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}
