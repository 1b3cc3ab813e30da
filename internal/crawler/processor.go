package crawler

import (
	"context"
	"strings"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/convert"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/extract"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/fetch"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// Processor turns one page URL into a complete document record.
// It owns the full per-page path: fetch, convert, repair, link
// extraction and rewriting. It never touches the frontier or the
// output directory; the scheduler does both.
type Processor struct {
	fetcher     fetch.Fetcher
	converter   *convert.Converter
	extractor   *extract.Extractor
	norm        *ident.Normalizer
	namespace   string
	titleSuffix string
}

// NewProcessor creates a Processor. All collaborators are required.
func NewProcessor(
	fetcher fetch.Fetcher,
	converter *convert.Converter,
	extractor *extract.Extractor,
	norm *ident.Normalizer,
	namespace, titleSuffix string,
) *Processor {
	return &Processor{
		fetcher:     fetcher,
		converter:   converter,
		extractor:   extractor,
		norm:        norm,
		namespace:   namespace,
		titleSuffix: titleSuffix,
	}
}

// Process fetches and converts one page. The returned links are the
// inline links found in the body before rewriting, so the scheduler can
// feed the local ones into the frontier. Fetch failures surface as
// *fetch.FetchError; everything else is a conversion failure.
func (p *Processor) Process(ctx context.Context, pageURL string) (*model.Document, []extract.Link, error) {
	page, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	md, err := p.converter.ToMarkdown(page.Fragments)
	if err != nil {
		return nil, nil, err
	}
	md = extract.Repair(md)

	links := p.extractor.Links(md)
	body := extract.Rewrite(md, links, func(l extract.Link) (string, bool) {
		if !p.norm.IsLocal(l.RawTarget) {
			return "", false
		}
		id := p.norm.DocumentID(l.RawTarget)
		if id == "" {
			return "", false
		}
		return p.namespace + id, true
	})

	doc := &model.Document{
		ID:          p.norm.DocumentID(pageURL),
		URL:         pageURL,
		Title:       p.title(page.Title),
		Body:        convert.PrettyPrint(body),
		Breadcrumbs: p.breadcrumbs(page.Breadcrumbs),
		Tags:        p.tags(pageURL),
	}
	return doc, links, nil
}

// title strips the site-name suffix the wiki appends to every page.
func (p *Processor) title(raw string) string {
	return strings.TrimSpace(strings.TrimSuffix(raw, p.titleSuffix))
}

// breadcrumbs resolves the trail's link targets into document IDs.
// Crumbs pointing off-site or nowhere keep an empty ID and render as
// plain text.
func (p *Processor) breadcrumbs(crumbs []fetch.Crumb) []model.Crumb {
	if len(crumbs) == 0 {
		return nil
	}
	out := make([]model.Crumb, 0, len(crumbs))
	for _, c := range crumbs {
		crumb := model.Crumb{Label: c.Label}
		if c.Href != "" && p.norm.IsLocal(c.Href) {
			crumb.ID = p.norm.DocumentID(c.Href)
		}
		out = append(out, crumb)
	}
	return out
}

// tags derives topic tags from the intermediate path segments of the
// page's site-relative URL.
func (p *Processor) tags(pageURL string) []string {
	path := strings.TrimSuffix(p.norm.NormalizeLink(pageURL), "/")
	segments := strings.Split(path, "/")
	if len(segments) < 2 {
		return nil
	}

	var tags []string
	for _, seg := range segments[:len(segments)-1] {
		if seg != "" {
			tags = append(tags, seg)
		}
	}
	return tags
}
