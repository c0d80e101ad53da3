package features

import (
	"context"

	"github.com/MikeSquared-Agency/petrosight/internal/extraction"
)

// Classifier answers are searched first in the text right after their
// label, so "trap type: combination" beats an earlier passing mention of
// "stratigraphic trap potential".
const anchorWindow = 40

func (e *Engineer) ReservoirQuality(ctx context.Context, in Inputs) ReservoirQualityIndicators {
	text, err := e.consult(ctx, "reservoir_quality", reservoirQualityPrompt, render(in.Satellite), render(in.Wells))
	if err != nil {
		return FallbackReservoirQuality()
	}

	var reply struct {
		PorosityProxy         *float64 `json:"porosityProxy"`
		PermeabilityIndicator *float64 `json:"permeabilityIndicator"`
		DiageneticAlteration  *float64 `json:"diageneticAlteration"`
		FractureDensity       *float64 `json:"fractureDensity"`
		WeatheringIntensity   *float64 `json:"weatheringIntensity"`
	}
	_ = extraction.DecodeJSON(text, &reply)

	d := DefaultReservoirQuality()
	return ReservoirQualityIndicators{
		PorosityProxy:         score(reply.PorosityProxy, text, d.PorosityProxy, "porosity"),
		PermeabilityIndicator: score(reply.PermeabilityIndicator, text, d.PermeabilityIndicator, "permeability"),
		DiageneticAlteration:  score(reply.DiageneticAlteration, text, d.DiageneticAlteration, "diagenetic", "diagenesis"),
		FractureDensity:       measure(reply.FractureDensity, text, d.FractureDensity, 0, "fracture density", "fracture"),
		WeatheringIntensity:   score(reply.WeatheringIntensity, text, d.WeatheringIntensity, "weathering"),
	}
}

func (e *Engineer) SourceRock(ctx context.Context, in Inputs) SourceRockAssessment {
	text, err := e.consult(ctx, "source_rock", sourceRockPrompt, render(in.Wells), render(in.Reservoirs))
	if err != nil {
		return FallbackSourceRock()
	}

	var reply struct {
		TOCProxy            *float64 `json:"tocProxy"`
		ThermalMaturity     *float64 `json:"thermalMaturity"`
		KerogenType         string   `json:"kerogenType"`
		GenerationPotential *float64 `json:"generationPotential"`
		Mineralogy          struct {
			Clay       *float64 `json:"clay"`
			Quartz     *float64 `json:"quartz"`
			Carbonates *float64 `json:"carbonates"`
			Pyrite     *float64 `json:"pyrite"`
		} `json:"mineralogy"`
	}
	_ = extraction.DecodeJSON(text, &reply)

	d := DefaultSourceRock()
	kerogen, ok := extraction.ParseKerogenType(reply.KerogenType)
	if !ok {
		kerogen = classify(text, "kerogen", d.KerogenType, extraction.ExtractKerogenType)
	}
	m := reply.Mineralogy
	return SourceRockAssessment{
		TOCProxy:            score(reply.TOCProxy, text, d.TOCProxy, "toc", "total organic carbon"),
		ThermalMaturity:     measure(reply.ThermalMaturity, text, d.ThermalMaturity, 2, "maturity", "vitrinite"),
		KerogenType:         kerogen,
		GenerationPotential: score(reply.GenerationPotential, text, d.GenerationPotential, "generation potential", "generation"),
		Mineralogy: Mineralogy{
			Clay:       measure(m.Clay, text, d.Mineralogy.Clay, 100, "clay"),
			Quartz:     measure(m.Quartz, text, d.Mineralogy.Quartz, 100, "quartz"),
			Carbonates: measure(m.Carbonates, text, d.Mineralogy.Carbonates, 100, "carbonate"),
			Pyrite:     measure(m.Pyrite, text, d.Mineralogy.Pyrite, 100, "pyrite"),
		},
	}
}

func (e *Engineer) SealIntegrity(ctx context.Context, in Inputs) SealIntegrityMetrics {
	text, err := e.consult(ctx, "seal_integrity", sealIntegrityPrompt, render(in.Seismic), render(in.Wells))
	if err != nil {
		return FallbackSealIntegrity()
	}

	var reply struct {
		ClayContinuity         *float64 `json:"clayContinuity"`
		Thickness              *float64 `json:"thickness"`
		FaultSealCapacity      *float64 `json:"faultSealCapacity"`
		DisplacementAnalysis   *float64 `json:"displacementAnalysis"`
		PressureRegime         string   `json:"pressureRegime"`
		GeomechanicalStability *float64 `json:"geomechanicalStability"`
	}
	_ = extraction.DecodeJSON(text, &reply)

	d := DefaultSealIntegrity()
	pressure, ok := extraction.ParsePressureRegime(reply.PressureRegime)
	if !ok {
		pressure = classify(text, "pressure", d.PressureRegime, extraction.ExtractPressureRegime)
	}
	return SealIntegrityMetrics{
		ClayContinuity:         score(reply.ClayContinuity, text, d.ClayContinuity, "clay continuity", "continuity"),
		Thickness:              measure(reply.Thickness, text, d.Thickness, 0, "thickness"),
		FaultSealCapacity:      score(reply.FaultSealCapacity, text, d.FaultSealCapacity, "fault seal", "seal capacity"),
		DisplacementAnalysis:   measure(reply.DisplacementAnalysis, text, d.DisplacementAnalysis, 0, "displacement", "throw"),
		PressureRegime:         pressure,
		GeomechanicalStability: score(reply.GeomechanicalStability, text, d.GeomechanicalStability, "geomechanical", "stability"),
	}
}

func (e *Engineer) TrapConfiguration(ctx context.Context, in Inputs) TrapConfigurationAnalysis {
	text, err := e.consult(ctx, "trap_configuration", trapConfigurationPrompt, render(in.Seismic), render(in.Satellite))
	if err != nil {
		return FallbackTrapConfiguration()
	}

	var reply struct {
		ClosureMapping struct {
			Area       *float64 `json:"area"`
			Relief     *float64 `json:"relief"`
			SpillPoint *float64 `json:"spillPoint"`
		} `json:"closureMapping"`
		FaultTrapIntegrity         *float64 `json:"faultTrapIntegrity"`
		StratigraphicTrapPotential *float64 `json:"stratigraphicTrapPotential"`
		StructuralComplexity       string   `json:"structuralComplexity"`
		TrapType                   string   `json:"trapType"`
	}
	_ = extraction.DecodeJSON(text, &reply)

	d := DefaultTrapConfiguration()
	complexity, ok := extraction.ParseComplexity(reply.StructuralComplexity)
	if !ok {
		complexity = classify(text, "complexity", d.StructuralComplexity, extraction.ExtractComplexity)
	}
	trapType, ok := extraction.ParseTrapType(reply.TrapType)
	if !ok {
		trapType = classify(text, "trap type", d.TrapType, extraction.ExtractTrapType)
	}
	c := reply.ClosureMapping
	return TrapConfigurationAnalysis{
		ClosureMapping: ClosureMapping{
			Area:       measure(c.Area, text, d.ClosureMapping.Area, 0, "closure area", "area"),
			Relief:     measure(c.Relief, text, d.ClosureMapping.Relief, 0, "relief"),
			SpillPoint: measure(c.SpillPoint, text, d.ClosureMapping.SpillPoint, 0, "spill point", "spill"),
		},
		FaultTrapIntegrity:         score(reply.FaultTrapIntegrity, text, d.FaultTrapIntegrity, "fault trap"),
		StratigraphicTrapPotential: score(reply.StratigraphicTrapPotential, text, d.StratigraphicTrapPotential, "stratigraphic trap potential", "stratigraphic"),
		StructuralComplexity:       complexity,
		TrapType:                   trapType,
	}
}

// score resolves one 0–100 field: structured value, then each keyword in
// order, then def.
func score(structured *float64, text string, def int, keywords ...string) int {
	if v, ok := extraction.Score(structured); ok {
		return v
	}
	for _, kw := range keywords {
		if v, ok := extraction.ExtractScore(text, kw); ok {
			return v
		}
	}
	return def
}

// measure resolves one non-negative float field. A positive ceiling
// rejects larger values.
func measure(structured *float64, text string, def, ceiling float64, keywords ...string) float64 {
	valid := func(v float64) bool { return ceiling <= 0 || v <= ceiling }

	if v, ok := extraction.Measure(structured); ok && valid(v) {
		return v
	}
	for _, kw := range keywords {
		if v, ok := extraction.ExtractFloat(text, kw); ok && valid(v) {
			return v
		}
	}
	return def
}

func classify[T ~string](text, anchor string, def T, extract func(string) (T, bool)) T {
	if v, ok := extract(extraction.After(text, anchor, anchorWindow)); ok {
		return v
	}
	if v, ok := extract(text); ok {
		return v
	}
	return def
}
