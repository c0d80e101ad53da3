package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MikeSquared-Agency/petrosight/internal/analysis"
	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
	"github.com/MikeSquared-Agency/petrosight/internal/processor"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeExecutor struct {
	calls   []analysis.Request
	trigger string
	errFor  map[string]error
}

func (f *fakeExecutor) Execute(_ context.Context, trigger string, req analysis.Request) (*analysis.Result, error) {
	f.calls = append(f.calls, req)
	f.trigger = trigger
	if err := f.errFor[req.Parameters.Basin]; err != nil {
		return nil, err
	}
	return &analysis.Result{}, nil
}

func basinsOf(reqs []analysis.Request) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Parameters.Basin
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(&fakeExecutor{}, "every day", []string{"Permian"}, discardLogger()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if _, err := New(&fakeExecutor{}, "0 6 * * *", nil, discardLogger()); err == nil {
		t.Error("expected error without basins")
	}
}

func TestNext(t *testing.T) {
	s, err := New(&fakeExecutor{}, "0 6 * * *", []string{"Permian"}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	from := time.Date(2026, 5, 4, 7, 0, 0, 0, time.UTC)
	want := time.Date(2026, 5, 5, 6, 0, 0, 0, time.UTC)
	if got := s.Next(from); !got.Equal(want) {
		t.Errorf("Next(%v) = %v, want %v", from, got, want)
	}
}

func TestRunOnce_SurveysEveryBasin(t *testing.T) {
	exec := &fakeExecutor{errFor: map[string]error{"Santos": errors.New("connector glitch")}}
	s, _ := New(exec, "@hourly", []string{"Permian", "Santos", "Niger Delta"}, discardLogger())

	if failed := s.RunOnce(context.Background()); failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
	if diff := cmp.Diff([]string{"Permian", "Santos", "Niger Delta"}, basinsOf(exec.calls)); diff != "" {
		t.Errorf("basins mismatch (-want +got):\n%s", diff)
	}
	for _, c := range exec.calls {
		if c.AnalysisType != analysis.FeatureEngineering {
			t.Errorf("expected feature_engineering, got %q", c.AnalysisType)
		}
	}
	if exec.trigger != processor.TriggerSchedule {
		t.Errorf("expected schedule trigger, got %q", exec.trigger)
	}
}

func TestRunOnce_AbortsOnInitializationFailure(t *testing.T) {
	initErr := fmt.Errorf("%w: missing api key", oracle.ErrInitialization)
	exec := &fakeExecutor{errFor: map[string]error{"Permian": initErr}}
	s, _ := New(exec, "@hourly", []string{"Permian", "Santos", "Niger Delta"}, discardLogger())

	if failed := s.RunOnce(context.Background()); failed != 3 {
		t.Errorf("expected all 3 basins counted as failed, got %d", failed)
	}
	if len(exec.calls) != 1 {
		t.Errorf("expected the survey to stop after the first basin, got %d calls", len(exec.calls))
	}
}

func TestStartStop(t *testing.T) {
	s, _ := New(&fakeExecutor{}, "0 0 1 1 *", []string{"Permian"}, discardLogger())
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
