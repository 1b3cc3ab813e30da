package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
)

func writeCorpus(t *testing.T, dir string, docs map[string]string) {
	t.Helper()
	for id, body := range docs {
		path := filepath.Join(dir, id+".md")
		if err := os.WriteFile(path, []byte(body), 0600); err != nil {
			t.Fatalf("write corpus document %s: %v", id, err)
		}
	}
}

func TestCheckDirCleanCorpus(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"a":     "# A\n\nSiehe [B](id:b) und [extern](https://example.com/x).\n",
		"b":     "# B\n\nZurueck zu [A](id:a).\n",
		"index": "# Regelwiki\n\n- [A](id:a)\n- [B](id:b)\n",
	})

	c := NewChecker("id:", ident.NewNormalizer("ulisses-regelwiki.de"))
	result, err := c.CheckDir(dir)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}

	if !result.Clean() {
		t.Errorf("Clean() = false: dangling=%v wikiURLs=%v", result.Dangling, result.WikiURLs)
	}
	if result.Documents != 3 {
		t.Errorf("Documents = %d, want 3", result.Documents)
	}
	if result.LinksChecked != 5 {
		t.Errorf("LinksChecked = %d, want 5", result.LinksChecked)
	}
}

func TestCheckDirFindsDanglingLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"a": "Siehe [Verschollen](id:verschollen) und nochmal [Verschollen](id:verschollen).\n",
	})

	c := NewChecker("id:", ident.NewNormalizer("ulisses-regelwiki.de"))
	result, err := c.CheckDir(dir)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}

	if len(result.Dangling) != 1 {
		t.Fatalf("Dangling = %v, want one deduplicated target", result.Dangling)
	}
	if result.Dangling[0] != "id:verschollen" {
		t.Errorf("Dangling[0] = %q, want %q", result.Dangling[0], "id:verschollen")
	}
}

func TestCheckDirFindsLeftoverWikiURLs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"a": "Direkt: [Kampf](https://ulisses-regelwiki.de/kampf.html)\n",
	})

	c := NewChecker("id:", ident.NewNormalizer("ulisses-regelwiki.de"))
	result, err := c.CheckDir(dir)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}

	if len(result.WikiURLs) != 1 {
		t.Fatalf("WikiURLs = %v, want the unrewritten URL", result.WikiURLs)
	}
	if result.Clean() {
		t.Error("Clean() = true for a corpus with leftover wiki URLs")
	}
}

func TestCheckDirIgnoresExternalLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"a": "[extern](https://example.com/x) und [mail](mailto:x@example.com)\n",
	})

	c := NewChecker("id:", ident.NewNormalizer("ulisses-regelwiki.de"))
	result, err := c.CheckDir(dir)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}
	if !result.Clean() {
		t.Errorf("Clean() = false: dangling=%v wikiURLs=%v", result.Dangling, result.WikiURLs)
	}
}
