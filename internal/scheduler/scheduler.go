package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MikeSquared-Agency/petrosight/internal/analysis"
	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
	"github.com/MikeSquared-Agency/petrosight/internal/processor"
)

type Executor interface {
	Execute(ctx context.Context, trigger string, req analysis.Request) (*analysis.Result, error)
}

// Survey runs a full feature-engineering analysis for each configured
// basin on a cron schedule.
type Survey struct {
	exec     Executor
	schedule cron.Schedule
	expr     string
	basins   []string
	cron     *cron.Cron
	logger   *slog.Logger
}

// New validates a standard five-field cron expression.
func New(exec Executor, expr string, basins []string, logger *slog.Logger) (*Survey, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	if len(basins) == 0 {
		return nil, errors.New("survey needs at least one basin")
	}
	return &Survey{
		exec:     exec,
		schedule: schedule,
		expr:     expr,
		basins:   basins,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger,
	}, nil
}

func (s *Survey) Start() {
	s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		s.RunOnce(context.Background())
	}))
	s.cron.Start()
	s.logger.Info("survey scheduler started", "schedule", s.expr, "basins", s.basins, "next_run", s.Next(time.Now()))
}

// Stop halts the schedule and waits for a running survey to finish or
// ctx to expire.
func (s *Survey) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("survey still running at shutdown")
	}
	s.logger.Info("survey scheduler stopped")
}

func (s *Survey) Next(after time.Time) time.Time {
	return s.schedule.Next(after)
}

// RunOnce surveys every basin in order and returns how many failed.
func (s *Survey) RunOnce(ctx context.Context) int {
	failed := 0
	for i, basin := range s.basins {
		req := analysis.Request{
			AnalysisType: analysis.FeatureEngineering,
			Parameters:   analysis.Parameters{Basin: basin},
		}
		if _, err := s.exec.Execute(ctx, processor.TriggerSchedule, req); err != nil {
			failed++
			// Remaining basins would hit the same initialization failure.
			if errors.Is(err, oracle.ErrInitialization) {
				s.logger.Error("survey aborted", "basin", basin, "error", err)
				return failed + len(s.basins) - i - 1
			}
		}
	}
	s.logger.Info("survey complete", "basins", len(s.basins), "failed", failed)
	return failed
}
