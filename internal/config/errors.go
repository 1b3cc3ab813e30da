package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
// Package-level sentinels so callers can use errors.Is while the message
// stays human-readable.
var (
	// ErrNoBaseHost is returned when the wiki host is empty.
	ErrNoBaseHost = errors.New("no base host: the wiki host to mirror must be set")

	// ErrNoEntryPoints is returned when no seed pages are configured.
	ErrNoEntryPoints = errors.New("no entry points: at least one seed page is required")

	// ErrNoNamespace is returned when the identifier namespace is empty.
	// Rewritten links would be indistinguishable from relative paths.
	ErrNoNamespace = errors.New("no namespace: the document identifier prefix must be set")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size limit is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
