package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Default fragment selectors for the rule wiki's page layout.
// The wiki is a Contao site: rule text lives in ce_text content elements
// inside the main column, and the navigation trail in mod_breadcrumb.
const (
	DefaultContentSelector    = "#main .ce_text"
	DefaultBreadcrumbSelector = ".mod_breadcrumb li"
)

// ErrNoContent is returned when a page loads but contains none of the
// content fragments the mirror extracts.
var ErrNoContent = errors.New("page contains no usable content fragments")

// FetchError wraps any failure to retrieve a page, keeping the URL for
// the end-of-run failure report.
type FetchError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Crumb is one breadcrumb item as the page declared it: a label and the
// raw link target, empty for the trail's non-linked current page.
type Crumb struct {
	Label string
	Href  string
}

// Page holds everything the mirror extracts from one fetched page.
type Page struct {
	// Title is the raw page title, site-name suffix still attached.
	Title string

	// Fragments is the concatenated HTML of the content region.
	Fragments string

	// Breadcrumbs is the page's navigation trail in document order.
	Breadcrumbs []Crumb
}

// Fetcher retrieves a page and extracts its fragments.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// HTTPFetcher fetches pages over plain HTTP with one reused client.
type HTTPFetcher struct {
	client             *http.Client
	userAgent          string
	maxBodySize        int64
	contentSelector    string
	breadcrumbSelector string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// WithContentSelector overrides the CSS selector for content fragments.
func WithContentSelector(sel string) Option {
	return func(f *HTTPFetcher) {
		f.contentSelector = sel
	}
}

// WithBreadcrumbSelector overrides the CSS selector for breadcrumb items.
func WithBreadcrumbSelector(sel string) Option {
	return func(f *HTTPFetcher) {
		f.breadcrumbSelector = sel
	}
}

// NewHTTPFetcher creates an HTTPFetcher using the given client.
// The client is required rather than constructed here so the politeness
// timeout lives in one place and tests can inject their own transport.
func NewHTTPFetcher(client *http.Client, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:             client,
		userAgent:          "dsa-wiki-crawler/2.0",
		maxBodySize:        5 * 1024 * 1024,
		contentSelector:    DefaultContentSelector,
		breadcrumbSelector: DefaultBreadcrumbSelector,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves one page. Network failures, non-success status codes
// and pages without content fragments all return a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	page := &Page{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	var fragments strings.Builder
	doc.Find(f.contentSelector).Each(func(_ int, sel *goquery.Selection) {
		if h, err := goquery.OuterHtml(sel); err == nil {
			fragments.WriteString(h)
			fragments.WriteString("\n")
		}
	})
	page.Fragments = fragments.String()

	if strings.TrimSpace(page.Fragments) == "" {
		return nil, &FetchError{URL: pageURL, Err: ErrNoContent}
	}

	doc.Find(f.breadcrumbSelector).Each(func(_ int, sel *goquery.Selection) {
		crumb := Crumb{}
		if a := sel.Find("a").First(); a.Length() > 0 {
			crumb.Label = strings.TrimSpace(a.Text())
			crumb.Href, _ = a.Attr("href")
		} else {
			crumb.Label = strings.TrimSpace(sel.Text())
		}
		if crumb.Label != "" {
			page.Breadcrumbs = append(page.Breadcrumbs, crumb)
		}
	})

	return page, nil
}
