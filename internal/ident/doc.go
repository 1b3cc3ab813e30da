// Package ident maps raw wiki link targets to canonical site-relative
// paths and stable document identifiers.
//
// The mapping must be total and consistent: every link discovered during
// a crawl normalizes to the same identifier no matter how the source page
// spelled it (absolute, protocol-relative, site-relative, percent-encoded).
// The crawl scheduler's visited set and the on-disk document names are both
// keyed by these identifiers, so a normalization bug here either duplicates
// pages or silently merges two pages' content on write.
package ident
