// Package fetch retrieves wiki pages and extracts the fragments the
// mirror cares about: the page title, the content region's HTML, and the
// breadcrumb trail. It is the crawl core's only window onto the network;
// everything behind the Fetcher interface is replaceable, including by a
// headless browser should the wiki ever require scripting.
package fetch
