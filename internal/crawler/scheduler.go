package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/extract"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/fetch"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/writer"
)

// State is the scheduler's lifecycle phase. Transitions are one-way:
// Seeding, then Draining, then Done.
type State int

const (
	// StateSeeding means the entry points are being processed.
	StateSeeding State = iota

	// StateDraining means discovered pages are being worked off.
	StateDraining

	// StateDone means the frontier is exhausted or the page cap hit.
	StateDone
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateSeeding:
		return "seeding"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ErrWrongState is returned when a scheduler phase is invoked out of
// order, e.g. Drain before Seed.
var ErrWrongState = errors.New("scheduler phase called out of order")

// Scheduler drives one mirror run: it seeds the frontier from the entry
// points, works the frontier off breadth-first and hands every finished
// document to the writer. It is strictly sequential; one page is in
// flight at any time, with a politeness delay between fetches.
type Scheduler struct {
	processor *Processor
	docWriter writer.DocumentWriter
	norm      *ident.Normalizer

	baseURL     string
	entryPoints []string
	crawlDelay  time.Duration
	maxPages    int
	logger      *slog.Logger

	state    State
	frontier frontier

	// visited maps each claimed document identifier to the normalized
	// path that claimed it, so a second path sharing the same final
	// slug can be reported instead of silently collapsing.
	visited  map[string]string
	manifest []model.ManifestEntry
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithCrawlDelay sets the politeness delay between page fetches.
func WithCrawlDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.crawlDelay = d
	}
}

// WithMaxPages caps how many pages one run processes. Zero or negative
// means no cap.
func WithMaxPages(n int) SchedulerOption {
	return func(s *Scheduler) {
		s.maxPages = n
	}
}

// WithSchedulerLogger sets the logger for crawl progress.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a Scheduler for one run against baseURL.
// Entry points are site-relative paths, crawled in the given order.
func NewScheduler(
	processor *Processor,
	docWriter writer.DocumentWriter,
	norm *ident.Normalizer,
	baseURL string,
	entryPoints []string,
	opts ...SchedulerOption,
) *Scheduler {
	s := &Scheduler{
		processor:   processor,
		docWriter:   docWriter,
		norm:        norm,
		baseURL:     baseURL,
		entryPoints: entryPoints,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		visited:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the scheduler's current lifecycle phase.
func (s *Scheduler) State() State {
	return s.state
}

// Seed processes every entry point in order, regardless of the page
// cap. Successfully mirrored entry points become manifest entries; a
// failed entry point is recorded in the report and skipped, it does not
// abort the run. Seed transitions the scheduler to StateDraining.
func (s *Scheduler) Seed(ctx context.Context, report *model.MirrorReport) error {
	if s.state != StateSeeding {
		return fmt.Errorf("%w: seed in state %s", ErrWrongState, s.state)
	}

	for _, entry := range s.entryPoints {
		if err := ctx.Err(); err != nil {
			return err
		}

		id := s.norm.DocumentID(entry)
		if id == "" {
			s.logger.Warn("entry point has no document identifier, skipping", "entry", entry)
			continue
		}
		path := s.norm.NormalizeLink(entry)
		s.visited[id] = path

		doc, ok := s.processOne(ctx, s.baseURL+path, report)
		if !ok {
			continue
		}
		doc.EntryPoint = true
		if !s.write(doc, report) {
			continue
		}
		report.PagesWritten++
		s.manifest = append(s.manifest, model.ManifestEntry{ID: doc.ID, Title: doc.Title})
	}

	s.state = StateDraining
	return nil
}

// WriteIndex persists the synthetic root document. It runs between Seed
// and Drain so the corpus has a stable root even if the run is cut
// short while draining.
func (s *Scheduler) WriteIndex(report *model.MirrorReport) error {
	if s.state != StateDraining {
		return fmt.Errorf("%w: write index in state %s", ErrWrongState, s.state)
	}

	report.Manifest = s.manifest
	if err := s.docWriter.WriteIndex(s.manifest); err != nil {
		return fmt.Errorf("write root index: %w", err)
	}
	s.logger.Info("root index written", "entries", len(s.manifest))
	return nil
}

// Drain works the frontier off until it is empty or the page cap is
// reached. Individual page failures are recorded and skipped. Drain
// transitions the scheduler to StateDone.
func (s *Scheduler) Drain(ctx context.Context, report *model.MirrorReport) error {
	if s.state != StateDraining {
		return fmt.Errorf("%w: drain in state %s", ErrWrongState, s.state)
	}

	for {
		path, ok := s.frontier.Pop()
		if !ok {
			break
		}
		if s.maxPages > 0 && report.PagesWritten >= s.maxPages {
			s.logger.Warn("page cap reached, abandoning frontier",
				"cap", s.maxPages, "pending", s.frontier.Len()+1)
			break
		}

		if err := s.pause(ctx); err != nil {
			return err
		}

		doc, ok := s.processOne(ctx, s.baseURL+path, report)
		if !ok {
			continue
		}
		if !s.write(doc, report) {
			continue
		}
		report.PagesWritten++
	}

	s.state = StateDone
	s.logger.Info("crawl finished",
		"pages", report.PagesWritten,
		"links", report.LinksDiscovered,
		"failures", len(report.Failures))
	return nil
}

// processOne runs the page processor for one URL, records any failure
// in the report and feeds the discovered links into the frontier. The
// returned bool reports success.
func (s *Scheduler) processOne(ctx context.Context, pageURL string, report *model.MirrorReport) (*model.Document, bool) {
	s.logger.Debug("processing page", "url", pageURL, "queued", s.frontier.Len())

	doc, links, err := s.processor.Process(ctx, pageURL)
	if err != nil {
		stage := model.StageConvert
		var fe *fetch.FetchError
		if errors.As(err, &fe) {
			stage = model.StageFetch
		}
		s.logger.Warn("page skipped", "url", pageURL, "stage", stage, "error", err)
		report.AddFailure(pageURL, stage, err)
		return nil, false
	}

	s.enqueue(links, report)
	return doc, true
}

// write persists one document, recording a failure on error. A write
// failure loses that document only; the crawl continues.
func (s *Scheduler) write(doc *model.Document, report *model.MirrorReport) bool {
	if err := s.docWriter.Write(doc); err != nil {
		s.logger.Warn("document not written", "id", doc.ID, "error", err)
		report.AddFailure(doc.URL, model.StageWrite, err)
		return false
	}
	return true
}

// enqueue pushes the unseen local links onto the frontier. A document
// is marked visited the moment it is enqueued, so no path enters the
// frontier twice no matter how many pages link to it.
func (s *Scheduler) enqueue(links []extract.Link, report *model.MirrorReport) {
	for _, link := range links {
		report.LinksDiscovered++

		if !s.norm.IsLocal(link.RawTarget) {
			continue
		}
		id := s.norm.DocumentID(link.RawTarget)
		if id == "" {
			continue
		}
		if claimed, seen := s.visited[id]; seen {
			if claimed != link.NormalizedTarget {
				s.logger.Debug("identifier already claimed by a different path",
					"id", id, "path", link.NormalizedTarget, "claimedBy", claimed)
			}
			continue
		}
		s.visited[id] = link.NormalizedTarget
		s.frontier.Push(link.NormalizedTarget)
	}
}

// pause waits out the politeness delay, or returns early when the
// context is canceled.
func (s *Scheduler) pause(ctx context.Context) error {
	if s.crawlDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.crawlDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
