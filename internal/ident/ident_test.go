package ident

import "testing"

// TestNormalizeLink tests host-prefix stripping and canonicalization.
func TestNormalizeLink(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("example.org")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "https absolute", raw: "https://example.org/a/b/page.html", want: "a/b/page.html"},
		{name: "http absolute", raw: "http://example.org/a/b/page.html", want: "a/b/page.html"},
		{name: "www form", raw: "https://www.example.org/page.html", want: "page.html"},
		{name: "protocol relative", raw: "//example.org/page.html", want: "page.html"},
		{name: "bare host", raw: "example.org/page.html", want: "page.html"},
		{name: "already relative", raw: "a/b/page.html", want: "a/b/page.html"},
		{name: "leading slash", raw: "/page.html", want: "page.html"},
		{name: "fragment dropped", raw: "page.html#section-2", want: "page.html"},
		{name: "percent decoded", raw: "r%C3%BCstung.html", want: "rüstung.html"},
		{name: "empty", raw: "", want: ""},
		{name: "bare host only", raw: "https://example.org/", want: ""},
		{name: "foreign host untouched", raw: "https://other.example.com/x.html", want: "https://other.example.com/x.html"},
		{name: "protocol relative foreign host untouched", raw: "//other.example.com/x.html", want: "//other.example.com/x.html"},
		{name: "double encoded slug", raw: "a%2520b.html", want: "a b.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := n.NormalizeLink(tt.raw); got != tt.want {
				t.Errorf("NormalizeLink(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestNormalizeLinkIdempotent verifies that normalizing an already
// normalized link returns it unchanged.
func TestNormalizeLinkIdempotent(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("example.org")

	inputs := []string{
		"https://example.org/a/b/page.html",
		"http://example.org/kampf.html",
		"a/b/page.html",
		"rüstung.html",
		"page.html#anchor",
		"",
		"https://other.example.com/x.html",
		"//other.example.com/x.html",
		"r%C3%BCstung.html",
		"a%2520b.html",
		"a%20b.html",
	}

	for _, raw := range inputs {
		once := n.NormalizeLink(raw)
		twice := n.NormalizeLink(once)
		if once != twice {
			t.Errorf("NormalizeLink not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

// TestDocumentID tests derivation of the bare document identifier.
func TestDocumentID(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("example.org")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "spec example", raw: "https://example.org/a/b/page.html", want: "page"},
		{name: "relative", raw: "kampf.html", want: "kampf"},
		{name: "htm extension", raw: "old.htm", want: "old"},
		{name: "no extension", raw: "a/b/slug", want: "slug"},
		{name: "trailing slash", raw: "a/b/page.html/", want: "page"},
		{name: "percent encoded slug", raw: "r%C3%BCstung.html", want: "rüstung"},
		{name: "no path segments", raw: "https://example.org/", want: ""},
		{name: "empty input", raw: "", want: ""},
		{name: "pure anchor", raw: "#top", want: ""},
		{name: "foreign host", raw: "https://other.example.com/x.html", want: ""},
		{name: "protocol relative foreign host", raw: "//other.example.com/x.html", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := n.DocumentID(tt.raw); got != tt.want {
				t.Errorf("DocumentID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestDocumentIDDistinct verifies that distinct pages yield distinct IDs.
func TestDocumentIDDistinct(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("example.org")

	entryPoints := []string{
		"grundregeln.html",
		"kampfregeln.html",
		"magie.html",
		"goetterwirken.html",
	}

	seen := make(map[string]string)
	for _, ep := range entryPoints {
		id := n.DocumentID(ep)
		if id == "" {
			t.Fatalf("DocumentID(%q) returned empty sentinel for a valid entry point", ep)
		}
		if prev, ok := seen[id]; ok {
			t.Errorf("ID collision: %q and %q both map to %q", prev, ep, id)
		}
		seen[id] = ep
	}
}

// TestIsLocal tests classification of local versus passthrough links.
func TestIsLocal(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("example.org")

	tests := []struct {
		raw  string
		want bool
	}{
		{"kampf.html", true},
		{"https://example.org/kampf.html", true},
		{"https://other.example.com/x.html", false},
		{"//other.example.com/x.html", false},
		{"//example.org/kampf.html", true},
		{"mailto:someone@example.org", false},
		{"", false},
		{"#top", false},
		{"https://example.org/", false},
	}

	for _, tt := range tests {
		if got := n.IsLocal(tt.raw); got != tt.want {
			t.Errorf("IsLocal(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
