// Package convert turns raw wiki HTML fragments into markdown.
//
// Conversion is a two-stage pass: an allowlist sanitizer first reduces the
// fragment to the tags and attributes the mirror cares about, then the
// html-to-markdown converter produces the markdown text. The crawl core
// only ever sees the final markdown; it never inspects HTML itself.
package convert
