// Package verify checks link integrity of a mirrored corpus after the
// crawl: local links must resolve to written documents and no raw wiki
// URL may survive rewriting.
package verify
