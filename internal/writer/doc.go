// Package writer persists document records as markdown files.
//
// One file per document, named by its identifier: a YAML header block,
// the breadcrumb trail as a chain of local links, then the page body.
// The synthetic root index lists all entry points under a fixed
// well-known identifier. Writes are one-shot; documents are never
// updated in place.
package writer
