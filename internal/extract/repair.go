package extract

import "regexp"

// Upstream HTML-to-markdown conversion occasionally produces text that is
// syntactically valid but visually broken. The repairs below are small,
// deterministic, idempotent and order-independent; they run before link
// extraction so the extractor sees the final text.
var (
	// An empty emphasis pair split across a line break, e.g. "**\n**",
	// left behind when the converter closes and reopens bold around a
	// forced line break inside one phrase.
	brokenEmphasis = regexp.MustCompile(`\*\*[ \t]*\n[ \t]*\*\*`)

	// A heading glyph the converter escaped at the start of a line.
	// The wiki uses these as ad-hoc list markers, not headings.
	escapedHash = regexp.MustCompile(`(?m)^\\#[ \t]*`)
)

// Repair applies the text-normalization repairs to converted markdown.
// Applying Repair to its own output returns the input unchanged.
func Repair(text string) string {
	text = brokenEmphasis.ReplaceAllString(text, "\n")
	text = escapedHash.ReplaceAllString(text, "- ")
	return text
}
