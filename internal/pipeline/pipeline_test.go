package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// recordingStep records whether it ran and optionally fails.
type recordingStep struct {
	name string
	err  error
	ran  bool
}

func (s *recordingStep) Do(_ context.Context, _ *model.MirrorReport) error {
	s.ran = true
	return s.err
}

func (s *recordingStep) Name() string {
	return s.name
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPipelineExecutesStepsInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Step {
		return stepFunc(name, func() { order = append(order, name) })
	}

	p := New(WithLogger(quietLogger()))
	p.AddSteps(mk("seed"), mk("index"), mk("drain"))

	report := model.NewMirrorReport("https://wiki.example/", "wiki")
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []string{"seed", "index", "drain"}
	if len(order) != len(want) {
		t.Fatalf("executed %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

// stepFunc adapts a closure into a Step for ordering tests.
type funcStep struct {
	name string
	fn   func()
}

func stepFunc(name string, fn func()) Step {
	return &funcStep{name: name, fn: fn}
}

func (s *funcStep) Do(_ context.Context, _ *model.MirrorReport) error {
	s.fn()
	return nil
}

func (s *funcStep) Name() string {
	return s.name
}

func TestPipelineStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	first := &recordingStep{name: "first", err: boom}
	second := &recordingStep{name: "second"}

	p := New(WithLogger(quietLogger()))
	p.AddSteps(first, second)

	report := model.NewMirrorReport("https://wiki.example/", "wiki")
	if err := p.Execute(context.Background(), report); !errors.Is(err, boom) {
		t.Errorf("Execute() error = %v, want boom", err)
	}
	if second.ran {
		t.Error("second step ran after first failed")
	}
}

func TestPipelineContinueOnError(t *testing.T) {
	t.Parallel()

	first := &recordingStep{name: "first", err: errors.New("boom")}
	second := &recordingStep{name: "second"}

	p := New(WithLogger(quietLogger()), WithContinueOnError(true))
	p.AddSteps(first, second)

	report := model.NewMirrorReport("https://wiki.example/", "wiki")
	if err := p.Execute(context.Background(), report); err != nil {
		t.Errorf("Execute() error = %v, want nil with continueOnError", err)
	}
	if !second.ran {
		t.Error("second step did not run despite continueOnError")
	}
}

func TestPipelineCancellation(t *testing.T) {
	t.Parallel()

	step := &recordingStep{name: "never"}
	p := New(WithLogger(quietLogger()))
	p.AddStep(step)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := model.NewMirrorReport("https://wiki.example/", "wiki")
	if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if step.ran {
		t.Error("step ran despite canceled context")
	}
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New(WithLogger(quietLogger()))
	p.AddSteps(&recordingStep{name: "a"}, &recordingStep{name: "b"})

	if p.StepCount() != 2 {
		t.Errorf("StepCount() = %d, want 2", p.StepCount())
	}
	names := p.StepNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("StepNames() = %v, want [a b]", names)
	}
}
