// Package log provides the mirror's logging setup on top of the standard
// slog package.
//
// Crawl logs routinely carry page bodies, HTML fragments and long URLs as
// attributes. The TruncatingHandler caps attribute values at a fixed
// length so a single debug line cannot flood the terminal, while the
// leading part of the value stays readable for diagnosis.
package log
