package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Attacke - Ulisses Regelwiki</title></head>
<body>
  <ul class="mod_breadcrumb">
    <li><a href="kampfregeln.html">Kampfregeln</a></li>
    <li>Attacke</li>
  </ul>
  <div id="main">
    <div class="ce_text"><p>Eine <a href="attacke.html">Attacke</a> kostet Aktionen.</p></div>
    <div class="ce_text"><p>Zweiter Absatz.</p></div>
  </div>
  <footer><div class="ce_text">footer noise outside main</div></footer>
</body>
</html>`

// TestFetch tests page retrieval and fragment extraction.
func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, fragments and breadcrumbs", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(samplePage))
		}))
		defer srv.Close()

		f := NewHTTPFetcher(srv.Client())
		page, err := f.Fetch(context.Background(), srv.URL+"/attacke.html")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		if page.Title != "Attacke - Ulisses Regelwiki" {
			t.Errorf("Title = %q", page.Title)
		}
		if !strings.Contains(page.Fragments, "Eine <a href=\"attacke.html\">Attacke</a>") {
			t.Errorf("content fragment missing: %q", page.Fragments)
		}
		if !strings.Contains(page.Fragments, "Zweiter Absatz") {
			t.Errorf("second fragment missing: %q", page.Fragments)
		}
		if strings.Contains(page.Fragments, "footer noise") {
			t.Errorf("fragment outside #main captured: %q", page.Fragments)
		}

		if len(page.Breadcrumbs) != 2 {
			t.Fatalf("expected 2 breadcrumbs, got %d: %+v", len(page.Breadcrumbs), page.Breadcrumbs)
		}
		if page.Breadcrumbs[0].Label != "Kampfregeln" || page.Breadcrumbs[0].Href != "kampfregeln.html" {
			t.Errorf("first crumb = %+v", page.Breadcrumbs[0])
		}
		if page.Breadcrumbs[1].Label != "Attacke" || page.Breadcrumbs[1].Href != "" {
			t.Errorf("second crumb = %+v", page.Breadcrumbs[1])
		}
	})

	t.Run("non-200 status is a FetchError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(srv.Client())
		_, err := f.Fetch(context.Background(), srv.URL+"/missing.html")

		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %T: %v", err, err)
		}
		if fe.URL != srv.URL+"/missing.html" {
			t.Errorf("FetchError.URL = %q", fe.URL)
		}
	})

	t.Run("empty content region is a FetchError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><head><title>t</title></head><body><p>no main</p></body></html>`))
		}))
		defer srv.Close()

		f := NewHTTPFetcher(srv.Client())
		_, err := f.Fetch(context.Background(), srv.URL+"/empty.html")
		if !errors.Is(err, ErrNoContent) {
			t.Fatalf("expected ErrNoContent, got %v", err)
		}
	})

	t.Run("unreachable server is a FetchError", func(t *testing.T) {
		t.Parallel()

		f := NewHTTPFetcher(&http.Client{})
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/never.html")

		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %T: %v", err, err)
		}
	})
}
