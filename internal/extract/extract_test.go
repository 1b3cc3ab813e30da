package extract

import (
	"strings"
	"testing"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
)

func newTestExtractor() *Extractor {
	return NewExtractor(ident.NewNormalizer("example.org"))
}

// TestLinks tests inline link extraction.
func TestLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts links in order of appearance", func(t *testing.T) {
		t.Parallel()

		e := newTestExtractor()
		links := e.Links("[Foo](bar.html) and [Baz](http://example.org/qux.html)")

		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d", len(links))
		}
		if links[0].Text != "Foo" || links[0].RawTarget != "bar.html" {
			t.Errorf("first link = %+v, want Foo/bar.html", links[0])
		}
		if links[1].Text != "Baz" || links[1].RawTarget != "http://example.org/qux.html" {
			t.Errorf("second link = %+v, want Baz/http://example.org/qux.html", links[1])
		}
		if links[1].NormalizedTarget != "qux.html" {
			t.Errorf("second link normalized = %q, want %q", links[1].NormalizedTarget, "qux.html")
		}
	})

	t.Run("records byte spans", func(t *testing.T) {
		t.Parallel()

		text := "see [Foo](bar.html) here"
		e := newTestExtractor()
		links := e.Links(text)

		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
		if got := text[links[0].Start:links[0].End]; got != "[Foo](bar.html)" {
			t.Errorf("span = %q, want %q", got, "[Foo](bar.html)")
		}
	})

	t.Run("malformed link yields no records", func(t *testing.T) {
		t.Parallel()

		e := newTestExtractor()
		if links := e.Links("[Foo](bar.html"); len(links) != 0 {
			t.Errorf("expected 0 links for malformed input, got %d", len(links))
		}
	})

	t.Run("nested brackets are rejected", func(t *testing.T) {
		t.Parallel()

		e := newTestExtractor()
		links := e.Links("[a [b](c.html)](d.html)")

		// Only the inner single-level link conforms.
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
		if links[0].RawTarget != "c.html" {
			t.Errorf("target = %q, want %q", links[0].RawTarget, "c.html")
		}
	})

	t.Run("images are skipped", func(t *testing.T) {
		t.Parallel()

		e := newTestExtractor()
		links := e.Links("![alt](img.png) [Foo](bar.html)")

		if len(links) != 1 || links[0].RawTarget != "bar.html" {
			t.Fatalf("expected only the inline link, got %+v", links)
		}
	})

	t.Run("extraction is deterministic", func(t *testing.T) {
		t.Parallel()

		text := "[A](a.html) text [B](b.html) more [A](a.html)"
		e := newTestExtractor()

		first := e.Links(text)
		second := e.Links(text)

		if len(first) != len(second) {
			t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("link %d differs between runs: %+v vs %+v", i, first[i], second[i])
			}
		}
	})
}

// TestRewrite tests the span-based link rewriter.
func TestRewrite(t *testing.T) {
	t.Parallel()

	t.Run("rewrites all occurrences", func(t *testing.T) {
		t.Parallel()

		text := "[A](a.html) and again [A](a.html)"
		e := newTestExtractor()
		links := e.Links(text)

		got := Rewrite(text, links, func(l Link) (string, bool) {
			return "id:a", true
		})
		want := "[A](id:a) and again [A](id:a)"
		if got != want {
			t.Errorf("Rewrite = %q, want %q", got, want)
		}
	})

	t.Run("declined links pass through", func(t *testing.T) {
		t.Parallel()

		text := "[Local](a.html) [Ext](https://other.example.com/x.html)"
		e := newTestExtractor()
		links := e.Links(text)

		got := Rewrite(text, links, func(l Link) (string, bool) {
			if strings.Contains(l.RawTarget, "://") {
				return "", false
			}
			return "id:a", true
		})
		want := "[Local](id:a) [Ext](https://other.example.com/x.html)"
		if got != want {
			t.Errorf("Rewrite = %q, want %q", got, want)
		}
	})

	t.Run("identical spans at different positions rewrite independently", func(t *testing.T) {
		t.Parallel()

		// The same "[X](t.html)" spelling occurs twice; only the second
		// occurrence is rewritten. Literal substring replacement would
		// corrupt the first occurrence as well.
		text := "[X](t.html) middle [X](t.html)"
		e := newTestExtractor()
		links := e.Links(text)
		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d", len(links))
		}

		got := Rewrite(text, links, func(l Link) (string, bool) {
			if l.Start == links[1].Start {
				return "id:t", true
			}
			return "", false
		})
		want := "[X](t.html) middle [X](id:t)"
		if got != want {
			t.Errorf("Rewrite = %q, want %q", got, want)
		}
	})

	t.Run("target recurring verbatim in body text is untouched", func(t *testing.T) {
		t.Parallel()

		text := "[A](a.html) mentions a.html in prose"
		e := newTestExtractor()
		links := e.Links(text)

		got := Rewrite(text, links, func(l Link) (string, bool) {
			return "id:a", true
		})
		want := "[A](id:a) mentions a.html in prose"
		if got != want {
			t.Errorf("Rewrite = %q, want %q", got, want)
		}
	})
}

// TestRepair tests the pre-extraction cleanup passes.
func TestRepair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "broken emphasis collapsed",
			in:   "**Schwert**\n**und Schild**",
			want: "**Schwert**\n**und Schild**",
		},
		{
			name: "empty emphasis pair across line break",
			in:   "vor**  \n  **nach",
			want: "vor\nnach",
		},
		{
			name: "escaped hash becomes list marker",
			in:   "\\# Erster Punkt\n\\# Zweiter Punkt",
			want: "- Erster Punkt\n- Zweiter Punkt",
		},
		{
			name: "clean text unchanged",
			in:   "# Heading\n\nplain *text*",
			want: "# Heading\n\nplain *text*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Repair(tt.in)
			if got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Repair(got); again != got {
				t.Errorf("Repair not idempotent: %q -> %q", got, again)
			}
		})
	}
}
