// Package crawler walks the wiki breadth-first from the entry points
// and produces one document record per reachable page.
//
// The package splits the work in two: Processor handles a single page
// (fetch, convert, rewrite links), Scheduler owns the frontier, the
// visited set and the crawl lifecycle.
package crawler
