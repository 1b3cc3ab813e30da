package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/crawler"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/database"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/verify"
)

// SeedStep processes the configured entry points and fills the frontier.
type SeedStep struct {
	scheduler *crawler.Scheduler
}

// NewSeedStep creates a SeedStep driving the given scheduler.
func NewSeedStep(scheduler *crawler.Scheduler) *SeedStep {
	return &SeedStep{scheduler: scheduler}
}

// Do executes the seeding phase.
func (s *SeedStep) Do(ctx context.Context, report *model.MirrorReport) error {
	return s.scheduler.Seed(ctx, report)
}

// Name returns the step name.
func (s *SeedStep) Name() string {
	return "seed"
}

// IndexStep writes the synthetic root document. It runs between seeding
// and draining so an interrupted run still leaves a corpus with a root.
type IndexStep struct {
	scheduler *crawler.Scheduler
}

// NewIndexStep creates an IndexStep driving the given scheduler.
func NewIndexStep(scheduler *crawler.Scheduler) *IndexStep {
	return &IndexStep{scheduler: scheduler}
}

// Do writes the root index.
func (s *IndexStep) Do(_ context.Context, report *model.MirrorReport) error {
	return s.scheduler.WriteIndex(report)
}

// Name returns the step name.
func (s *IndexStep) Name() string {
	return "index"
}

// DrainStep works the frontier off until the wiki is mirrored.
type DrainStep struct {
	scheduler *crawler.Scheduler
}

// NewDrainStep creates a DrainStep driving the given scheduler.
func NewDrainStep(scheduler *crawler.Scheduler) *DrainStep {
	return &DrainStep{scheduler: scheduler}
}

// Do executes the draining phase.
func (s *DrainStep) Do(ctx context.Context, report *model.MirrorReport) error {
	return s.scheduler.Drain(ctx, report)
}

// Name returns the step name.
func (s *DrainStep) Name() string {
	return "drain"
}

// VerifyStep checks link integrity of the written corpus and records
// dangling targets in the report.
type VerifyStep struct {
	checker *verify.Checker
}

// NewVerifyStep creates a VerifyStep using the given checker.
func NewVerifyStep(checker *verify.Checker) *VerifyStep {
	return &VerifyStep{checker: checker}
}

// Do verifies the corpus under the report's output directory.
func (s *VerifyStep) Do(_ context.Context, report *model.MirrorReport) error {
	result, err := s.checker.CheckDir(report.OutputDir)
	if err != nil {
		return fmt.Errorf("verify corpus: %w", err)
	}
	report.DanglingLinks = append(result.Dangling, result.WikiURLs...)
	return nil
}

// Name returns the step name.
func (s *VerifyStep) Name() string {
	return "verify"
}

// PersistStep saves the finished run to the history database.
type PersistStep struct {
	db *database.MirrorDB
}

// NewPersistStep creates a PersistStep writing to the given database.
func NewPersistStep(db *database.MirrorDB) *PersistStep {
	return &PersistStep{db: db}
}

// Do finalizes the report's elapsed time and saves the run.
func (s *PersistStep) Do(ctx context.Context, report *model.MirrorReport) error {
	report.Elapsed = time.Since(report.StartedAt)
	if _, err := s.db.SaveRun(ctx, report); err != nil {
		return fmt.Errorf("persist run: %w", err)
	}
	return nil
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}
