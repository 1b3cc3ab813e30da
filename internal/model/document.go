package model

// Crumb is one step of a page's breadcrumb trail: a display label and the
// document identifier the label links to. An empty ID means the crumb has
// no local target (the wiki sometimes renders plain-text crumbs).
type Crumb struct {
	Label string
	ID    string
}

// Document is one mirrored wiki page, complete and immutable.
// It is created exactly once per visited page by the page processor and
// written exactly once by the document writer; nothing mutates it after.
type Document struct {
	// ID is the stable document identifier, without the namespace tag.
	// It doubles as the output filename.
	ID string

	// URL is the source URL the page was fetched from.
	URL string

	// Title is the page title with the wiki's site-name suffix stripped.
	Title string

	// Body is the converted, link-rewritten markdown text.
	Body string

	// Breadcrumbs is the page's position in the wiki navigation, ordered
	// from the root outward.
	Breadcrumbs []Crumb

	// Tags are derived from the intermediate path segments of the page's
	// normalized URL, e.g. "regeln/kampf/attacke.html" tags the document
	// with "regeln" and "kampf".
	Tags []string

	// EntryPoint marks documents that were seeded rather than discovered.
	EntryPoint bool
}

// ManifestEntry is one seed page's contribution to the root index.
type ManifestEntry struct {
	ID    string
	Title string
}
