package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/petrosight/internal/connector"
	"github.com/MikeSquared-Agency/petrosight/internal/features"
)

// Initializer is the part of the oracle adapter the dispatcher needs:
// a fatal, once-only construction check before any work starts.
type Initializer interface {
	Init() error
}

// Dispatcher maps an analysis request onto the connector, the stage
// analyzers and the aggregator. HTTP, NATS and scheduled runs share it.
type Dispatcher struct {
	oracle    Initializer
	connector *connector.Connector
	engineer  *features.Engineer
	logger    *slog.Logger
}

func New(init Initializer, conn *connector.Connector, eng *features.Engineer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{oracle: init, connector: conn, engineer: eng, logger: logger}
}

// needs lists the collections each analysis reads.
var needs = map[Type][]connector.DataType{
	ReservoirQuality:   {connector.DataSatellite, connector.DataWells},
	SourceRock:         {connector.DataWells, connector.DataReservoirs},
	SealIntegrity:      {connector.DataSeismic, connector.DataWells},
	TrapConfiguration:  {connector.DataSeismic, connector.DataSatellite},
	Prospectivity:      {connector.DataWells, connector.DataSeismic, connector.DataSatellite, connector.DataReservoirs},
	FeatureEngineering: {connector.DataWells, connector.DataSeismic, connector.DataSatellite, connector.DataReservoirs},
	DataAcquisition:    nil,
}

// Run executes one analysis. Errors wrapping ErrUnknownAnalysisType or
// ErrInvalidParameters are the caller's fault; an oracle.ErrInitialization
// is fatal; stage failures never surface here.
func (d *Dispatcher) Run(ctx context.Context, req Request) (*Result, error) {
	id := req.EnsureID()
	if _, ok := needs[req.AnalysisType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnalysisType, req.AnalysisType)
	}
	if d.oracle != nil {
		if err := d.oracle.Init(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	p := req.Parameters
	sel := connector.Selector{Basin: p.Basin, Limit: p.Limit}
	res := &Result{ID: id, AnalysisType: req.AnalysisType, Basin: p.Basin}

	switch req.AnalysisType {
	case DataAcquisition:
		if p.DataType == "" {
			return nil, fmt.Errorf("%w: dataType is required for %s", ErrInvalidParameters, DataAcquisition)
		}
		data, err := d.connector.Fetch(ctx, p.DataType, sel)
		if err != nil {
			return nil, requestError(err)
		}
		res.Data = data

	case Prospectivity:
		if p.Stages != nil {
			if err := p.Stages.Validate(); err != nil {
				return nil, fmt.Errorf("%w: stages: %w", ErrInvalidParameters, err)
			}
			score := d.engineer.Aggregate(ctx, *p.Stages)
			res.Data = features.GeologicalIndices{Stages: *p.Stages, OverallProspectivity: score}
			res.OverallProspectivity = &score
			break
		}
		fallthrough

	case FeatureEngineering:
		in, err := d.inputs(ctx, req.AnalysisType, p, sel)
		if err != nil {
			return nil, err
		}
		indices := d.engineer.Run(ctx, in)
		res.Data = indices
		res.OverallProspectivity = &indices.OverallProspectivity

	default:
		in, err := d.inputs(ctx, req.AnalysisType, p, sel)
		if err != nil {
			return nil, err
		}
		res.Data = d.stage(ctx, req.AnalysisType, in)
	}

	res.Duration = time.Since(start)
	d.logger.Info("analysis complete",
		"analysis_id", id,
		"analysis_type", req.AnalysisType,
		"basin", p.Basin,
		"duration", res.Duration,
	)
	return res, nil
}

func (d *Dispatcher) stage(ctx context.Context, t Type, in features.Inputs) any {
	switch t {
	case ReservoirQuality:
		return d.engineer.ReservoirQuality(ctx, in)
	case SourceRock:
		return d.engineer.SourceRock(ctx, in)
	case SealIntegrity:
		return d.engineer.SealIntegrity(ctx, in)
	default:
		return d.engineer.TrapConfiguration(ctx, in)
	}
}

// inputs returns the caller's records when supplied, otherwise fetches the
// collections the analysis reads. Fetches run in a fixed order so a seeded
// connector yields the same records for the same request.
func (d *Dispatcher) inputs(ctx context.Context, t Type, p Parameters, sel connector.Selector) (features.Inputs, error) {
	if p.Inputs != nil {
		return *p.Inputs, nil
	}

	var in features.Inputs
	for _, dt := range needs[t] {
		var err error
		switch dt {
		case connector.DataWells:
			in.Wells, err = d.connector.Wells(ctx, sel)
		case connector.DataSeismic:
			in.Seismic, err = d.connector.Seismic(ctx, sel)
		case connector.DataSatellite:
			in.Satellite, err = d.connector.Satellite(ctx, sel)
		case connector.DataReservoirs:
			in.Reservoirs, err = d.connector.Reservoirs(ctx, sel)
		}
		if err != nil {
			return features.Inputs{}, requestError(err)
		}
	}
	return in, nil
}

func requestError(err error) error {
	if errors.Is(err, connector.ErrUnknownBasin) || errors.Is(err, connector.ErrUnsupportedDataType) {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	return fmt.Errorf("fetch records: %w", err)
}

// IsRequestError reports whether err is the caller's fault.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrUnknownAnalysisType) || errors.Is(err, ErrInvalidParameters)
}
