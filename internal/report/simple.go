package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display at the end of a run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether empty sections are shown.
	showEmpty bool

	// verbose enables per-failure detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(report *model.MirrorReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFailures(&sb, report)
	w.writeDangling(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.MirrorReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       WIKI MIRROR REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Wiki:       %s\n", report.BaseURL))
	sb.WriteString(fmt.Sprintf("Output:     %s\n", report.OutputDir))
	sb.WriteString(fmt.Sprintf("Started:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:    %s\n", report.Elapsed.Round(time.Second)))

	if report.Clean() {
		sb.WriteString("Status:     Complete\n")
	} else {
		sb.WriteString(fmt.Sprintf("Status:     Complete with %d failure(s), %d dangling link(s)\n",
			len(report.Failures), len(report.DanglingLinks)))
	}
	sb.WriteString("\n")
}

// writeSummary writes the page and link counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.MirrorReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nSUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Pages written:    %d\n", report.PagesWritten))
	sb.WriteString(fmt.Sprintf("  Links discovered: %d\n", report.LinksDiscovered))
	sb.WriteString(fmt.Sprintf("  Entry points:     %d\n", len(report.Manifest)))
	sb.WriteString("\n")
}

// writeFailures lists the failed URLs grouped by stage.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.MirrorReport) {
	if len(report.Failures) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nFAILURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Failures) == 0 {
		sb.WriteString("  None.\n\n")
		return
	}

	for _, stage := range []string{model.StageFetch, model.StageConvert, model.StageWrite} {
		failures := report.FailuresAtStage(stage)
		if len(failures) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  [%s] %d page(s)\n", strings.ToUpper(stage), len(failures)))
		for _, f := range failures {
			sb.WriteString(fmt.Sprintf("    - %s\n", f.URL))
			if w.verbose {
				sb.WriteString(fmt.Sprintf("      %s\n", f.Error))
			}
		}
	}
	sb.WriteString("\n")
}

// writeDangling lists local link targets with no matching document.
func (w *SimpleWriter) writeDangling(sb *strings.Builder, report *model.MirrorReport) {
	if len(report.DanglingLinks) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nDANGLING LINKS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.DanglingLinks) == 0 {
		sb.WriteString("  None.\n\n")
		return
	}

	for _, target := range report.DanglingLinks {
		sb.WriteString(fmt.Sprintf("  - %s\n", target))
	}
	sb.WriteString("\n")
}
