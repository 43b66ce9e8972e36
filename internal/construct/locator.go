package construct

import (
	"fmt"
	"net/url"
	"slices"
)

// Locator is an immutable absolute IRI reference. It is used as an item
// identifier, subject identifier, subject locator and as a datatype tag.
type Locator string

// ParseLocator validates s as an absolute IRI.
func ParseLocator(s string) (Locator, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty locator", ErrInvalidLocator)
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLocator, s, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidLocator, s)
	}
	return Locator(u.String()), nil
}

// MustLocator is ParseLocator for constants; it panics on invalid input.
func MustLocator(s string) Locator {
	l, err := ParseLocator(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Resolve resolves ref against l. Absolute references are returned as is.
func (l Locator) Resolve(ref string) (Locator, error) {
	base, err := url.Parse(string(l))
	if err != nil {
		return "", fmt.Errorf("%w: base %q: %v", ErrInvalidLocator, l, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLocator, ref, err)
	}
	return ParseLocator(base.ResolveReference(r).String())
}

func (l Locator) String() string { return string(l) }

// SortLocators sorts locs in place and returns them.
func SortLocators(locs []Locator) []Locator {
	slices.Sort(locs)
	return locs
}
