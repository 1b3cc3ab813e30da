package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for committing next to the mirrored corpus.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(report *model.MirrorReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeManifest(md, report)
	w.writeFailures(md, report)
	w.writeDangling(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.MirrorReport) {
	md.H1("Wiki Mirror Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Wiki", "`" + report.BaseURL + "`"},
			{"Output", "`" + report.OutputDir + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(time.Second).String()},
			{"Pages written", strconv.Itoa(report.PagesWritten)},
			{"Links discovered", strconv.Itoa(report.LinksDiscovered)},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")

	if report.Clean() {
		md.Note("All reachable pages were mirrored without failures.")
	} else {
		md.Warningf("%d page(s) failed and %d link target(s) are dangling.",
			len(report.Failures), len(report.DanglingLinks))
	}
	md.PlainText("")
}

// statusText returns the status cell based on report state.
func (w *MarkdownWriter) statusText(report *model.MirrorReport) string {
	if report.Clean() {
		return "✅ Complete"
	}
	return "⚠️ Complete with failures"
}

// writeManifest writes the entry-point table.
func (w *MarkdownWriter) writeManifest(md *markdown.Markdown, report *model.MirrorReport) {
	md.H2("Entry Points")
	md.PlainText("")

	if len(report.Manifest) == 0 {
		md.PlainText("No entry points were mirrored.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Manifest))
	for _, entry := range report.Manifest {
		rows = append(rows, []string{"`" + entry.ID + "`", entry.Title})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Document", "Title"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the failure table grouped by stage.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.MirrorReport) {
	if len(report.Failures) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		rows = append(rows, []string{
			strings.ToUpper(f.Stage),
			"`" + f.URL + "`",
			truncateString(f.Error, 80),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Stage", "URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDangling lists local link targets with no matching document.
func (w *MarkdownWriter) writeDangling(md *markdown.Markdown, report *model.MirrorReport) {
	if len(report.DanglingLinks) == 0 {
		return
	}

	md.H2("Dangling Links")
	md.PlainText("")

	items := make([]string, 0, len(report.DanglingLinks))
	for _, target := range report.DanglingLinks {
		items = append(items, "`"+target+"`")
	}
	md.BulletList(items...)
	md.PlainText("")
}

// truncateString shortens s to maxLen runes for table cells.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
