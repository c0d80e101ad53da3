package features

import (
	"fmt"

	"github.com/MikeSquared-Agency/petrosight/internal/connector"
	"github.com/MikeSquared-Agency/petrosight/internal/extraction"
)

// Inputs are the raw acquisition collections a feature-engineering run
// draws from. Each stage reads only the collections it needs.
type Inputs struct {
	Wells      []connector.WellData      `json:"wells,omitempty"`
	Seismic    []connector.SeismicData   `json:"seismic,omitempty"`
	Satellite  []connector.SatelliteData `json:"satellite,omitempty"`
	Reservoirs []connector.ReservoirData `json:"reservoirs,omitempty"`
}

// ReservoirQualityIndicators scores the reservoir rock. Lower
// DiageneticAlteration is better.
type ReservoirQualityIndicators struct {
	PorosityProxy         int     `json:"porosityProxy"`
	PermeabilityIndicator int     `json:"permeabilityIndicator"`
	DiageneticAlteration  int     `json:"diageneticAlteration"`
	FractureDensity       float64 `json:"fractureDensity"` // fractures/km
	WeatheringIntensity   int     `json:"weatheringIntensity"`
}

// Mineralogy percentages are independent estimates and need not sum to 100.
type Mineralogy struct {
	Clay       float64 `json:"clay"`
	Quartz     float64 `json:"quartz"`
	Carbonates float64 `json:"carbonates"`
	Pyrite     float64 `json:"pyrite"`
}

type SourceRockAssessment struct {
	TOCProxy            int                    `json:"tocProxy"`
	ThermalMaturity     float64                `json:"thermalMaturity"` // %Ro equivalent, 0–2
	KerogenType         extraction.KerogenType `json:"kerogenType"`
	GenerationPotential int                    `json:"generationPotential"`
	Mineralogy          Mineralogy             `json:"mineralogy"`
}

type SealIntegrityMetrics struct {
	ClayContinuity         int                       `json:"clayContinuity"`
	Thickness              float64                   `json:"thickness"` // m
	FaultSealCapacity      int                       `json:"faultSealCapacity"`
	DisplacementAnalysis   float64                   `json:"displacementAnalysis"` // m
	PressureRegime         extraction.PressureRegime `json:"pressureRegime"`
	GeomechanicalStability int                       `json:"geomechanicalStability"`
}

type ClosureMapping struct {
	Area       float64 `json:"area"`       // km²
	Relief     float64 `json:"relief"`     // m
	SpillPoint float64 `json:"spillPoint"` // m depth
}

type TrapConfigurationAnalysis struct {
	ClosureMapping             ClosureMapping        `json:"closureMapping"`
	FaultTrapIntegrity         int                   `json:"faultTrapIntegrity"`
	StratigraphicTrapPotential int                   `json:"stratigraphicTrapPotential"`
	StructuralComplexity       extraction.Complexity `json:"structuralComplexity"`
	TrapType                   extraction.TrapType   `json:"trapType"`
}

// Stages holds the four stage outputs the aggregator consumes.
type Stages struct {
	ReservoirQuality  ReservoirQualityIndicators `json:"reservoirQuality"`
	SourceRock        SourceRockAssessment       `json:"sourceRock"`
	SealIntegrity     SealIntegrityMetrics       `json:"sealIntegrity"`
	TrapConfiguration TrapConfigurationAnalysis  `json:"trapConfiguration"`
}

// GeologicalIndices is the terminal pipeline output. Every field is set.
type GeologicalIndices struct {
	Stages
	OverallProspectivity float64 `json:"overallProspectivity"`
}

// DefaultProspectivity is the composite score used when aggregation fails.
const DefaultProspectivity = 65

// Stage defaults fill individual fields the oracle reply did not yield.
// On their own they form a plausible moderate prospect.

func DefaultReservoirQuality() ReservoirQualityIndicators {
	return ReservoirQualityIndicators{
		PorosityProxy:         65,
		PermeabilityIndicator: 60,
		DiageneticAlteration:  35,
		FractureDensity:       2.5,
		WeatheringIntensity:   45,
	}
}

func DefaultSourceRock() SourceRockAssessment {
	return SourceRockAssessment{
		TOCProxy:            70,
		ThermalMaturity:     0.8,
		KerogenType:         extraction.KerogenII,
		GenerationPotential: 68,
		Mineralogy:          Mineralogy{Clay: 35, Quartz: 40, Carbonates: 20, Pyrite: 5},
	}
}

func DefaultSealIntegrity() SealIntegrityMetrics {
	return SealIntegrityMetrics{
		ClayContinuity:         72,
		Thickness:              45,
		FaultSealCapacity:      68,
		DisplacementAnalysis:   25,
		PressureRegime:         extraction.PressureNormal,
		GeomechanicalStability: 70,
	}
}

func DefaultTrapConfiguration() TrapConfigurationAnalysis {
	return TrapConfigurationAnalysis{
		ClosureMapping:             ClosureMapping{Area: 25, Relief: 150, SpillPoint: 2800},
		FaultTrapIntegrity:         70,
		StratigraphicTrapPotential: 55,
		StructuralComplexity:       extraction.ComplexityModerate,
		TrapType:                   extraction.TrapStructural,
	}
}

// Stage fallbacks replace the whole record when the oracle call fails.
// They are deliberately a notch more conservative than the defaults.

func FallbackReservoirQuality() ReservoirQualityIndicators {
	return ReservoirQualityIndicators{
		PorosityProxy:         60,
		PermeabilityIndicator: 55,
		DiageneticAlteration:  40,
		FractureDensity:       2.0,
		WeatheringIntensity:   50,
	}
}

func FallbackSourceRock() SourceRockAssessment {
	return SourceRockAssessment{
		TOCProxy:            65,
		ThermalMaturity:     0.75,
		KerogenType:         extraction.KerogenII,
		GenerationPotential: 62,
		Mineralogy:          Mineralogy{Clay: 35, Quartz: 40, Carbonates: 20, Pyrite: 5},
	}
}

func FallbackSealIntegrity() SealIntegrityMetrics {
	return SealIntegrityMetrics{
		ClayContinuity:         68,
		Thickness:              40,
		FaultSealCapacity:      65,
		DisplacementAnalysis:   30,
		PressureRegime:         extraction.PressureNormal,
		GeomechanicalStability: 65,
	}
}

func FallbackTrapConfiguration() TrapConfigurationAnalysis {
	return TrapConfigurationAnalysis{
		ClosureMapping:             ClosureMapping{Area: 20, Relief: 120, SpillPoint: 2600},
		FaultTrapIntegrity:         65,
		StratigraphicTrapPotential: 50,
		StructuralComplexity:       extraction.ComplexityModerate,
		TrapType:                   extraction.TrapStructural,
	}
}

// FallbackIndices is the full output of a run in which every oracle call failed.
// DefaultStages is every stage at its extraction-miss default.
func DefaultStages() Stages {
	return Stages{
		ReservoirQuality:  DefaultReservoirQuality(),
		SourceRock:        DefaultSourceRock(),
		SealIntegrity:     DefaultSealIntegrity(),
		TrapConfiguration: DefaultTrapConfiguration(),
	}
}

// Validate rejects stage records whose categorical fields fall outside
// their closed sets.
func (s Stages) Validate() error {
	switch {
	case !s.SourceRock.KerogenType.Valid():
		return fmt.Errorf("kerogenType %q", s.SourceRock.KerogenType)
	case !s.SealIntegrity.PressureRegime.Valid():
		return fmt.Errorf("pressureRegime %q", s.SealIntegrity.PressureRegime)
	case !s.TrapConfiguration.StructuralComplexity.Valid():
		return fmt.Errorf("structuralComplexity %q", s.TrapConfiguration.StructuralComplexity)
	case !s.TrapConfiguration.TrapType.Valid():
		return fmt.Errorf("trapType %q", s.TrapConfiguration.TrapType)
	}
	return nil
}

func FallbackIndices() GeologicalIndices {
	return GeologicalIndices{
		Stages: Stages{
			ReservoirQuality:  FallbackReservoirQuality(),
			SourceRock:        FallbackSourceRock(),
			SealIntegrity:     FallbackSealIntegrity(),
			TrapConfiguration: FallbackTrapConfiguration(),
		},
		OverallProspectivity: DefaultProspectivity,
	}
}
