// Package model contains the data structures shared across the mirror:
// the document records the crawl produces, the entry-point manifest, and
// the run report the CLI summarizes at the end of a mirror run.
package model
