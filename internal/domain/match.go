package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// IDMatch selects how identifiers are compared
type IDMatch string

const (
	IDMatchExact IDMatch = "exact" // case-sensitive, byte-for-byte
	IDMatchFold  IDMatch = "fold"  // full Unicode case folding
)

// ParseIDMatch converts a string to IDMatch. Empty input selects exact matching.
func ParseIDMatch(s string) (IDMatch, error) {
	switch IDMatch(strings.ToLower(strings.TrimSpace(s))) {
	case "", IDMatchExact:
		return IDMatchExact, nil
	case IDMatchFold:
		return IDMatchFold, nil
	default:
		return "", fmt.Errorf("unknown id match policy %q", s)
	}
}

// Key returns the lookup key for id under this policy. Two identifiers refer
// to the same entry iff their keys are equal.
func (m IDMatch) Key(id string) string {
	if m == IDMatchFold {
		// A Caser keeps state, so each call gets its own.
		return cases.Fold().String(id)
	}
	return id
}

// Same reports whether a and b refer to the same entry under this policy
func (m IDMatch) Same(a, b string) bool {
	return m.Key(a) == m.Key(b)
}
