package features

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
)

// promptItems bounds how many records of each collection a prompt embeds.
const promptItems = 2

const (
	stageTemperature = 0.2
	stageMaxTokens   = 1024
)

// Engineer runs the stage analyzers and the aggregator against one oracle.
// A nil oracle is valid: every stage then returns its fallback record.
type Engineer struct {
	oracle oracle.Oracle
	logger *slog.Logger
}

func New(o oracle.Oracle, logger *slog.Logger) *Engineer {
	return &Engineer{oracle: o, logger: logger}
}

// Run computes every stage concurrently, then aggregates. It never fails;
// degraded stages show up as fallback values.
func (e *Engineer) Run(ctx context.Context, in Inputs) GeologicalIndices {
	start := time.Now()

	var st Stages
	var g errgroup.Group
	g.Go(func() error {
		st.ReservoirQuality = e.ReservoirQuality(ctx, in)
		return nil
	})
	g.Go(func() error {
		st.SourceRock = e.SourceRock(ctx, in)
		return nil
	})
	g.Go(func() error {
		st.SealIntegrity = e.SealIntegrity(ctx, in)
		return nil
	})
	g.Go(func() error {
		st.TrapConfiguration = e.TrapConfiguration(ctx, in)
		return nil
	})
	_ = g.Wait()

	out := GeologicalIndices{
		Stages:               st,
		OverallProspectivity: e.Aggregate(ctx, st),
	}

	e.logger.Info("feature engineering complete",
		"wells", len(in.Wells),
		"seismic", len(in.Seismic),
		"satellite", len(in.Satellite),
		"reservoirs", len(in.Reservoirs),
		"overall_prospectivity", out.OverallProspectivity,
		"duration", time.Since(start),
	)
	return out
}

// consult makes the single oracle call for a stage. Any error means the
// caller should use its fallback record.
func (e *Engineer) consult(ctx context.Context, stage, prompt string, args ...any) (string, error) {
	if e.oracle == nil {
		return "", fmt.Errorf("%s: no oracle configured", stage)
	}
	text, err := e.oracle.Analyze(ctx, oracle.Request{
		System:      systemPrompt,
		User:        fmt.Sprintf(prompt, args...),
		Temperature: oracle.Temperature(stageTemperature),
		MaxTokens:   stageMaxTokens,
	})
	if err != nil {
		e.logger.Warn("stage analysis failed, using fallback", "stage", stage, "error", err)
		return "", err
	}
	e.logger.Debug("stage analysis reply", "stage", stage, "reply_len", len(text))
	return text, nil
}

// render JSON-encodes at most promptItems leading records.
func render[T any](records []T) string {
	if len(records) > promptItems {
		records = records[:promptItems]
	}
	if len(records) == 0 {
		return "(none supplied)"
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "(unavailable)"
	}
	return string(b)
}
