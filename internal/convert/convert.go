package convert

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Converter turns sanitized wiki HTML into markdown text.
type Converter struct {
	sanitizer *Sanitizer
}

// NewConverter creates a Converter using the given Sanitizer.
// A nil sanitizer selects the default allowlist.
func NewConverter(sanitizer *Sanitizer) *Converter {
	if sanitizer == nil {
		sanitizer = NewSanitizer(nil, nil)
	}
	return &Converter{sanitizer: sanitizer}
}

// ToMarkdown sanitizes the raw fragment and converts the result to
// markdown. Link targets are passed through exactly as the page declared
// them; rewriting into local identifiers happens later, in the page
// processor, after link extraction.
func (c *Converter) ToMarkdown(rawFragment string) (string, error) {
	clean, err := c.sanitizer.Sanitize(rawFragment)
	if err != nil {
		return "", err
	}

	md, err := htmltomarkdown.ConvertString(clean)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return md, nil
}

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	trailingSpaces   = regexp.MustCompile(`(?m)[ \t]+$`)
)

// PrettyPrint normalizes whitespace in markdown text: trailing spaces are
// stripped, runs of blank lines collapse to one, and the text ends with a
// single newline. Purely cosmetic; it cannot fail, and callers treat its
// output as a drop-in replacement for the input.
func PrettyPrint(md string) string {
	md = trailingSpaces.ReplaceAllString(md, "")
	md = excessBlankLines.ReplaceAllString(md, "\n\n")
	md = strings.TrimRight(md, "\n")
	if md == "" {
		return ""
	}
	return md + "\n"
}
