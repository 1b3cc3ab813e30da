package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// JSONWriter outputs run summaries in JSON format.
// This format is designed for machine consumption and downstream
// tooling built on the mirrored corpus.
type JSONWriter struct {
	baseWriter

	// indent settings for pretty-printing.
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets custom indentation for pretty-printed output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint enables pretty-printing with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report as a single JSON document followed by a
// newline.
func (w *JSONWriter) Write(report *model.MirrorReport) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if w.indent != "" || w.prefix != "" {
		enc.SetIndent(w.prefix, w.indent)
	}
	if err := enc.Encode(report); err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}
	return w.output.Write(buf.Bytes())
}
