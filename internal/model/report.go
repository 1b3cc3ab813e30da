package model

import "time"

// Failure stages, recorded so the end-of-run summary can distinguish a
// page that never arrived from a page that could not be written.
const (
	StageFetch   = "fetch"
	StageConvert = "convert"
	StageWrite   = "write"
)

// Failure records one URL the mirror could not fully process.
// Failures never abort the crawl; they are collected for the summary.
type Failure struct {
	URL   string `json:"url"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// MirrorReport aggregates the outcome of one mirror run.
// The pipeline steps accumulate into it; the report writers and the
// database consume it after the crawl finishes.
type MirrorReport struct {
	// BaseURL is the wiki the run mirrored.
	BaseURL string `json:"base_url"`

	// OutputDir is where the document corpus was written.
	OutputDir string `json:"output_dir"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// PagesWritten counts documents successfully written, the root index
	// excluded.
	PagesWritten int `json:"pages_written"`

	// LinksDiscovered counts frontier entries seen, duplicates included.
	LinksDiscovered int `json:"links_discovered"`

	// Manifest lists the entry points in their configured order.
	Manifest []ManifestEntry `json:"manifest"`

	// Failures lists every URL that failed fetch, conversion or write.
	Failures []Failure `json:"failures,omitempty"`

	// DanglingLinks lists local link targets with no matching document,
	// filled in by the post-run verification step.
	DanglingLinks []string `json:"dangling_links,omitempty"`
}

// NewMirrorReport creates a report for a run against the given wiki.
func NewMirrorReport(baseURL, outputDir string) *MirrorReport {
	return &MirrorReport{
		BaseURL:   baseURL,
		OutputDir: outputDir,
		StartedAt: time.Now(),
	}
}

// AddFailure records a failed URL with its stage and cause.
func (r *MirrorReport) AddFailure(url, stage string, err error) {
	r.Failures = append(r.Failures, Failure{URL: url, Stage: stage, Error: err.Error()})
}

// FailuresAtStage returns the failures recorded for one stage.
func (r *MirrorReport) FailuresAtStage(stage string) []Failure {
	var out []Failure
	for _, f := range r.Failures {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	return out
}

// Clean reports whether the run completed without failures or dangling
// links.
func (r *MirrorReport) Clean() bool {
	return len(r.Failures) == 0 && len(r.DanglingLinks) == 0
}
