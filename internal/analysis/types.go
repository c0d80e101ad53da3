package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/petrosight/internal/connector"
	"github.com/MikeSquared-Agency/petrosight/internal/features"
)

// Request-level errors. Callers map them to a client error.
var (
	ErrUnknownAnalysisType = errors.New("unknown analysis type")
	ErrInvalidParameters   = errors.New("invalid parameters")
)

type Type string

const (
	ReservoirQuality   Type = "reservoir_quality"
	SourceRock         Type = "source_rock"
	SealIntegrity      Type = "seal_integrity"
	TrapConfiguration  Type = "trap_configuration"
	Prospectivity      Type = "prospectivity"
	FeatureEngineering Type = "feature_engineering"
	DataAcquisition    Type = "data_acquisition"
)

// Types lists every supported analysis type.
func Types() []Type {
	return []Type{
		ReservoirQuality,
		SourceRock,
		SealIntegrity,
		TrapConfiguration,
		Prospectivity,
		FeatureEngineering,
		DataAcquisition,
	}
}

// Parameters narrow an analysis. Inputs and Stages, when supplied, replace
// the records the connector would otherwise generate.
type Parameters struct {
	Basin    string             `json:"basin,omitempty"`
	Limit    int                `json:"limit,omitempty"`
	DataType connector.DataType `json:"dataType,omitempty"`
	Inputs   *features.Inputs   `json:"inputs,omitempty"`
	Stages   *features.Stages   `json:"stages,omitempty"`
}

// UnmarshalJSON decodes supplied stages over the stage defaults, so a
// partial payload still yields fully populated records.
func (p *Parameters) UnmarshalJSON(b []byte) error {
	type plain Parameters
	var raw struct {
		plain
		Stages json.RawMessage `json:"stages"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Parameters(raw.plain)
	p.Stages = nil
	if len(raw.Stages) > 0 && !bytes.Equal(raw.Stages, []byte("null")) {
		st := features.DefaultStages()
		if err := json.Unmarshal(raw.Stages, &st); err != nil {
			return err
		}
		p.Stages = &st
	}
	return nil
}

type Request struct {
	ID           uuid.UUID  `json:"requestId,omitempty"`
	AnalysisType Type       `json:"analysisType"`
	Parameters   Parameters `json:"parameters"`
}

// EnsureID assigns a fresh id to a request that arrived without one.
func (r *Request) EnsureID() uuid.UUID {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return r.ID
}

// Result is the outcome of one successful analysis.
type Result struct {
	ID           uuid.UUID     `json:"analysisId"`
	AnalysisType Type          `json:"analysisType"`
	Basin        string        `json:"basin,omitempty"`
	Data         any           `json:"data"`
	Duration     time.Duration `json:"-"`

	// OverallProspectivity is set for analyses that produce a composite score.
	OverallProspectivity *float64 `json:"-"`
}
