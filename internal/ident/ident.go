package ident

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer converts raw link targets into canonical site-relative paths
// and document identifiers for a single wiki host.
//
// Design decision: The host prefixes are precomputed once at construction
// rather than derived per call because:
//  1. Every extracted link on every page passes through NormalizeLink
//  2. The prefix list is fixed for the lifetime of a crawl
//  3. Prefix order is load-bearing and easier to audit in one place
type Normalizer struct {
	// prefixes are the absolute forms of the wiki host, ordered from most
	// specific to least specific. Order matters: the bare-host form must
	// come last so it cannot consume part of a scheme-qualified form.
	prefixes []string
}

// NewNormalizer creates a Normalizer for the given wiki host.
// The host is given without scheme, e.g. "ulisses-regelwiki.de".
// Both the "www." form and the bare form are recognized.
func NewNormalizer(host string) *Normalizer {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")

	hosts := []string{host}
	if !strings.HasPrefix(host, "www.") {
		hosts = append(hosts, "www."+host)
	}

	// Scheme-qualified forms first, then protocol-relative, then bare.
	var prefixes []string
	for _, h := range hosts {
		prefixes = append(prefixes, "https://"+h+"/", "http://"+h+"/")
	}
	for _, h := range hosts {
		prefixes = append(prefixes, "https://"+h, "http://"+h, "//"+h+"/", "//"+h)
	}
	for _, h := range hosts {
		prefixes = append(prefixes, h+"/")
	}

	return &Normalizer{prefixes: prefixes}
}

// NormalizeLink strips any known host prefix from raw, leaving a
// site-relative path. Fragments are dropped because they never change
// which document a link resolves to. The result is percent-decoded and
// NFC-normalized so the same page slug yields the same path regardless
// of how the source encoded it.
//
// NormalizeLink is idempotent: an already-relative path is returned
// unchanged apart from decoding, and decoding a decoded path is a no-op
// for the slugs the wiki actually uses.
func (n *Normalizer) NormalizeLink(raw string) string {
	s := strings.TrimSpace(raw)

	matched := false
	for _, prefix := range n.prefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			matched = true
			break
		}
	}

	// A protocol-relative link that matched no known prefix points at a
	// foreign host. The double slash is kept as the foreignness marker,
	// the same role "://" plays for scheme-qualified foreign links.
	if !matched && strings.HasPrefix(s, "//") {
		return norm.NFC.String(s)
	}
	s = strings.TrimPrefix(s, "/")

	// Anchors within a page do not identify a different document.
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	// Decode to a fixed point. A single pass would decode a
	// double-encoded slug differently on the first and second call, and
	// the ID a page's links rewrite to must match the ID the page itself
	// is filed under no matter how often its path passes through here.
	// Each effective decode strictly shortens s, so the loop terminates.
	for {
		decoded, err := url.PathUnescape(s)
		if err != nil || decoded == s {
			break
		}
		s = decoded
	}

	return norm.NFC.String(s)
}

// DocumentID derives the bare document identifier from a raw link target:
// the final path segment with a trailing page extension stripped. The
// caller is responsible for prefixing the namespace tag.
//
// The empty string is returned when the input has no usable path segment
// (empty links, bare hosts, pure-anchor links). Callers must treat "" as
// "not a local document" and leave such links untouched.
func (n *Normalizer) DocumentID(raw string) string {
	path := n.NormalizeLink(raw)
	if path == "" {
		return ""
	}

	// A scheme or protocol-relative prefix surviving normalization means
	// a foreign host.
	if strings.Contains(path, "://") || strings.HasPrefix(path, "//") {
		return ""
	}

	path = strings.TrimSuffix(path, "/")
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	if last == "" {
		return ""
	}

	for _, ext := range []string{".html", ".htm"} {
		if strings.HasSuffix(strings.ToLower(last), ext) {
			return last[:len(last)-len(ext)]
		}
	}
	return last
}

// IsLocal reports whether raw resolves to a document on the wiki host.
// Links that keep a scheme after normalization (foreign hosts, mailto:,
// javascript:) and links without a usable path segment are not local.
func (n *Normalizer) IsLocal(raw string) bool {
	path := n.NormalizeLink(raw)
	if path == "" || strings.HasPrefix(path, "//") || strings.Contains(path, ":") {
		return false
	}
	return n.DocumentID(raw) != ""
}
