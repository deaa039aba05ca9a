package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

// Style is a verbosity preset controlling how much detail is rendered per
// meaning or definition.
type Style string

const (
	StyleNormal Style = "normal"
	StyleUltra  Style = "ultra"
)

// ErrUnknownStyle is returned by ParseStyle for unsupported styles.
var ErrUnknownStyle = errors.New("unknown style")

// ParseStyle converts s into a Style. Matching is case-insensitive.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleNormal:
		return StyleNormal, nil
	case StyleUltra:
		return StyleUltra, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Initial returns the lower-cased first letter of the style, used in
// output file names.
func (s Style) Initial() string {
	for _, r := range string(s) {
		return strings.ToLower(string(r))
	}
	return ""
}

func (s Style) String() string { return string(s) }
