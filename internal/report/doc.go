// Package report renders the end-of-run summary in multiple formats:
// plain text for the terminal, markdown for committing next to the
// mirrored corpus, and JSON for downstream tooling.
package report
