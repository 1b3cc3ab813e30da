// Package main provides the entry point for the dsa-wiki-crawler CLI.
//
// dsa-wiki-crawler mirrors the Ulisses Regelwiki as a corpus of
// markdown documents with stable local identifiers.
//
// Usage:
//
//	dsa-wiki-crawler mirror
//	dsa-wiki-crawler check
//
// See --help for all available options.
package main

// main is the entry point for dsa-wiki-crawler.
func main() {
	Execute()
}
