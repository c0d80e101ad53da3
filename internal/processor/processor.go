package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/petrosight/internal/analysis"
	"github.com/MikeSquared-Agency/petrosight/internal/hermes"
	"github.com/MikeSquared-Agency/petrosight/internal/store"
)

// Triggers recorded with every run.
const (
	TriggerHTTP     = "http"
	TriggerNATS     = "nats"
	TriggerSchedule = "schedule"
)

const recordTimeout = 5 * time.Second

type Runner interface {
	Run(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

type Publisher interface {
	Publish(subject string, data any) error
}

type Recorder interface {
	RecordRun(ctx context.Context, r store.Run) error
}

// Processor runs analyses and reports each outcome on NATS and in the run
// store. Publisher and Recorder are optional.
type Processor struct {
	runner    Runner
	publisher Publisher
	recorder  Recorder
	logger    *slog.Logger
}

func New(r Runner, pub Publisher, rec Recorder, logger *slog.Logger) *Processor {
	return &Processor{runner: r, publisher: pub, recorder: rec, logger: logger}
}

// HandleAnalysisRequested is the NATS handler for petrosight.analysis.requested.
func (p *Processor) HandleAnalysisRequested(subject string, data []byte) {
	var req analysis.Request
	if err := json.Unmarshal(data, &req); err != nil {
		p.logger.Error("failed to parse analysis request", "subject", subject, "error", err)
		p.publish(hermes.SubjectAnalysisFailed, hermes.AnalysisEvent{
			Trigger:   TriggerNATS,
			Error:     fmt.Sprintf("invalid request: %v", err),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	p.logger.Info("processing analysis request",
		"analysis_id", req.EnsureID(),
		"analysis_type", req.AnalysisType,
		"basin", req.Parameters.Basin,
	)
	_, _ = p.Execute(context.Background(), TriggerNATS, req)
}

// Execute runs one analysis and reports the outcome. The returned error
// is the runner's, unchanged.
func (p *Processor) Execute(ctx context.Context, trigger string, req analysis.Request) (*analysis.Result, error) {
	id := req.EnsureID()
	start := time.Now()
	res, err := p.runner.Run(ctx, req)

	ev := hermes.AnalysisEvent{
		AnalysisID:   id.String(),
		AnalysisType: string(req.AnalysisType),
		Basin:        req.Parameters.Basin,
		Trigger:      trigger,
		Success:      err == nil,
		Timestamp:    time.Now().UTC(),
	}
	run := store.Run{
		ID:           id,
		AnalysisType: string(req.AnalysisType),
		Basin:        req.Parameters.Basin,
		Trigger:      trigger,
		Success:      err == nil,
		Duration:     time.Since(start),
	}

	if err != nil {
		p.logger.Error("analysis failed", "analysis_id", id, "analysis_type", req.AnalysisType, "trigger", trigger, "error", err)
		ev.Error = err.Error()
		run.Error = err.Error()
		p.publish(hermes.SubjectAnalysisFailed, ev)
		p.record(ctx, run)
		return nil, err
	}

	ev.Data = res.Data
	run.OverallProspectivity = res.OverallProspectivity
	if payload, merr := json.Marshal(res.Data); merr == nil {
		run.Payload = payload
	} else {
		p.logger.Warn("failed to encode run payload", "analysis_id", id, "error", merr)
	}
	p.publish(hermes.SubjectAnalysisCompleted, ev)
	p.record(ctx, run)
	return res, nil
}

func (p *Processor) publish(subject string, ev hermes.AnalysisEvent) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(subject, ev); err != nil {
		p.logger.Error("failed to publish analysis event", "subject", subject, "analysis_id", ev.AnalysisID, "error", err)
	}
}

// record is not cancelled along with the caller's context.
func (p *Processor) record(ctx context.Context, run store.Run) {
	if p.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := p.recorder.RecordRun(ctx, run); err != nil {
		p.logger.Error("failed to record analysis run", "analysis_id", run.ID, "error", err)
	}
}
