package features

import (
	"context"
	"encoding/json"
	"math"

	"github.com/MikeSquared-Agency/petrosight/internal/extraction"
)

// Keyword variants tried in order of specificity when the reply carries
// no structured score.
var prospectivityKeywords = []string{"prospectivity", "score", "overall"}

// Aggregate asks the oracle to combine the four stage records under an
// equal-weight rubric. The result is always within [0,100].
func (e *Engineer) Aggregate(ctx context.Context, st Stages) float64 {
	text, err := e.consult(ctx, "aggregate", aggregatePrompt,
		jsonText(st.ReservoirQuality),
		jsonText(st.SourceRock),
		jsonText(st.SealIntegrity),
		jsonText(st.TrapConfiguration),
	)
	if err != nil {
		return DefaultProspectivity
	}

	v, ok := prospectivity(text)
	if !ok {
		e.logger.Warn("no prospectivity score in reply, using default", "reply_len", len(text))
		return DefaultProspectivity
	}
	return v
}

func prospectivity(text string) (float64, bool) {
	var reply struct {
		OverallProspectivity *float64 `json:"overallProspectivity"`
	}
	if extraction.DecodeJSON(text, &reply) == nil {
		if v := reply.OverallProspectivity; v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
			return clamp(*v), true
		}
	}
	// Signed so an out-of-range negative clamps to 0 instead of losing its sign.
	for _, kw := range prospectivityKeywords {
		if v, ok := extraction.ExtractSigned(text, kw); ok {
			return clamp(v), true
		}
	}
	return 0, false
}

func clamp(v float64) float64 {
	return math.Round(math.Max(0, math.Min(100, v)))
}

func jsonText(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "(unavailable)"
	}
	return string(b)
}
