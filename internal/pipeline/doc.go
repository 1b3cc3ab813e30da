// Package pipeline sequences the phases of one mirror run: seed the
// frontier, write the root index, drain the frontier, verify the
// corpus and persist the run history.
package pipeline
