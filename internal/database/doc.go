// Package database persists mirror run history in a local SQLite
// database, so past runs can be inspected without re-crawling.
package database
