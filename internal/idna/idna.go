// Package idna bridges display-form Unicode domain names and their
// Punycode (RFC 3492) wire encoding, per RFC 3490. It wraps
// golang.org/x/net/idna rather than hand-rolling the Punycode state
// machine, since the teacher module already depends on golang.org/x/net.
package idna

import (
	"strings"

	"golang.org/x/net/idna"

	"github.com/cbrgm/resolve/internal/werrors"
)

// profile is shared by ToASCII/ToUnicode. Lookup is the conversion profile
// x/net/idna recommends for resolvers verifying/encoding names received
// from or sent to the wire, as opposed to Punycode (no validation) or
// Registration (stricter than lookups need).
var profile = idna.Lookup

// ToASCII converts a single label or a dot-joined host to its ASCII/Punycode
// form. A string that is already all-ASCII is returned unchanged (per the
// label-level and host-level round-trip law). A trailing dot is preserved.
func ToASCII(s string) (string, error) {
	if isASCII(s) {
		return s, nil
	}
	out, err := profile.ToASCII(s)
	if err != nil {
		return "", &werrors.IdnaError{Label: s, Err: err}
	}
	return out, nil
}

// ToUnicode converts a single label or a dot-joined host from its
// ASCII/Punycode form back to Unicode. A string with no "xn--" labels is
// returned unchanged. A trailing dot is preserved.
func ToUnicode(s string) (string, error) {
	if !hasPunycodeLabel(s) {
		return s, nil
	}
	out, err := profile.ToUnicode(s)
	if err != nil {
		return "", &werrors.IdnaError{Label: s, Err: err}
	}
	return out, nil
}

// ToASCIILabel converts a single already-split label (no dots) to its
// Punycode form, used by the wire codec when encoding one label at a time.
func ToASCIILabel(label string) (string, error) {
	return ToASCII(label)
}

// ToUnicodeLabel converts a single already-split label back to Unicode,
// used by the wire codec when decoding one label at a time.
func ToUnicodeLabel(label string) (string, error) {
	return ToUnicode(label)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// hasPunycodeLabel reports whether s (a label or dot-joined host) contains
// at least one label beginning case-insensitively with "xn--".
func hasPunycodeLabel(s string) bool {
	for _, label := range strings.Split(s, ".") {
		if len(label) >= 4 && strings.EqualFold(label[:4], "xn--") {
			return true
		}
	}
	return false
}
