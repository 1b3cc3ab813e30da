package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/markdown"
	"gopkg.in/yaml.v3"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// DocumentWriter persists document records under their canonical IDs.
type DocumentWriter interface {
	// Write persists one document. Exactly one call per document.
	Write(doc *model.Document) error

	// WriteIndex persists the synthetic root document listing the entry
	// points in manifest order.
	WriteIndex(manifest []model.ManifestEntry) error
}

// header is the structured block at the top of every document file.
type header struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Tags       []string `yaml:"tags"`
	EntryPoint bool     `yaml:"entryPoint"`
}

// FSWriter writes documents into a directory on the local filesystem.
type FSWriter struct {
	dir       string
	namespace string
	indexID   string
}

// NewFSWriter creates an FSWriter rooted at dir. The directory is created
// on first use. The namespace is needed to render local links in the
// breadcrumb trail and the root index.
func NewFSWriter(dir, namespace, indexID string) *FSWriter {
	return &FSWriter{dir: dir, namespace: namespace, indexID: indexID}
}

// Write renders and persists one document.
func (w *FSWriter) Write(doc *model.Document) error {
	var buf bytes.Buffer

	if err := w.writeHeader(&buf, header{
		ID:         doc.ID,
		Title:      doc.Title,
		Tags:       doc.Tags,
		EntryPoint: doc.EntryPoint,
	}); err != nil {
		return fmt.Errorf("render header for %s: %w", doc.ID, err)
	}

	if trail := w.renderBreadcrumbs(doc.Breadcrumbs); trail != "" {
		buf.WriteString(trail)
		buf.WriteString("\n\n")
	}

	buf.WriteString(doc.Body)

	return w.writeFile(doc.ID, buf.Bytes())
}

// WriteIndex renders and persists the root document.
func (w *FSWriter) WriteIndex(manifest []model.ManifestEntry) error {
	var buf bytes.Buffer

	if err := w.writeHeader(&buf, header{
		ID:    w.indexID,
		Title: "Index",
		Tags:  []string{},
	}); err != nil {
		return fmt.Errorf("render index header: %w", err)
	}

	items := make([]string, 0, len(manifest))
	for _, entry := range manifest {
		items = append(items, markdown.Link(entry.Title, w.namespace+entry.ID))
	}

	md := markdown.NewMarkdown(&buf)
	md.H1("Regelwiki")
	md.PlainText("")
	md.BulletList(items...)
	if err := md.Build(); err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	return w.writeFile(w.indexID, buf.Bytes())
}

// writeHeader renders the YAML header block.
func (w *FSWriter) writeHeader(buf *bytes.Buffer, h header) error {
	meta, err := yaml.Marshal(h)
	if err != nil {
		return err
	}
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	return nil
}

// renderBreadcrumbs renders the trail as a chain of local links.
// Crumbs without a local target stay plain text.
func (w *FSWriter) renderBreadcrumbs(crumbs []model.Crumb) string {
	if len(crumbs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		if c.ID != "" {
			parts = append(parts, markdown.Link(c.Label, w.namespace+c.ID))
		} else {
			parts = append(parts, c.Label)
		}
	}
	return strings.Join(parts, " > ")
}

// writeFile persists content under <dir>/<id>.md.
func (w *FSWriter) writeFile(id string, content []byte) error {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.dir, id+".md")
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("write document %s: %w", id, err)
	}
	return nil
}
