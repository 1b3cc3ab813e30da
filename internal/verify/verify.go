package verify

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
)

// Result is the outcome of one corpus verification.
type Result struct {
	// Documents is the number of markdown files checked.
	Documents int

	// LinksChecked counts every link inspected across the corpus.
	LinksChecked int

	// Dangling lists namespace targets with no matching document,
	// deduplicated and sorted.
	Dangling []string

	// WikiURLs lists link destinations that still point at the wiki
	// host instead of a local identifier, deduplicated and sorted.
	WikiURLs []string
}

// Clean reports whether the corpus passed verification.
func (r *Result) Clean() bool {
	return len(r.Dangling) == 0 && len(r.WikiURLs) == 0
}

// Checker validates link integrity of a mirrored corpus: every local
// link must resolve to a document in the output directory, and no link
// may still carry a raw wiki URL.
//
// The corpus is parsed with goldmark rather than re-matched with the
// extraction regexp, so verification exercises an independent reading
// of the files it checks.
type Checker struct {
	namespace string
	norm      *ident.Normalizer
	md        goldmark.Markdown
}

// NewChecker creates a Checker for corpora written with the given
// namespace tag. The normalizer identifies leftover wiki URLs.
func NewChecker(namespace string, norm *ident.Normalizer) *Checker {
	return &Checker{
		namespace: namespace,
		norm:      norm,
		md:        goldmark.New(),
	}
}

// CheckDir verifies every markdown file in dir.
func (c *Checker) CheckDir(dir string) (*Result, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus directory: %w", err)
	}

	known := make(map[string]bool, len(files))
	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), ".md")
		known[id] = true
	}

	result := &Result{Documents: len(files)}
	dangling := make(map[string]bool)
	wikiURLs := make(map[string]bool)

	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", path, err)
		}
		c.checkDocument(source, known, dangling, wikiURLs, result)
	}

	result.Dangling = sortedKeys(dangling)
	result.WikiURLs = sortedKeys(wikiURLs)
	return result, nil
}

// checkDocument walks one document's AST and records link problems.
func (c *Checker) checkDocument(source []byte, known, dangling, wikiURLs map[string]bool, result *Result) {
	doc := c.md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		result.LinksChecked++

		dest := string(link.Destination)
		switch {
		case strings.HasPrefix(dest, c.namespace):
			id := strings.TrimPrefix(dest, c.namespace)
			if !known[id] {
				dangling[dest] = true
			}
		case c.norm.IsLocal(dest):
			// A destination the normalizer claims as local should have
			// been rewritten into the namespace during the crawl.
			wikiURLs[dest] = true
		}
		return ast.WalkContinue, nil
	})
}

// sortedKeys returns the map keys in sorted order.
func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
