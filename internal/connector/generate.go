package connector

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Synthetic generators stand in for the external data registries. All
// randomness comes from the connector's seeded source so a given seed
// always yields the same collections.

var (
	wellStatuses   = []string{"producing", "producing", "producing", "shut-in", "drilling", "abandoned"}
	wellTypes      = []string{"oil", "oil", "gas", "condensate", "dry"}
	surveyTypes    = []string{"2D", "3D", "3D", "4D"}
	dataQualities  = []string{"excellent", "good", "good", "fair", "poor"}
	satellitePlats = []string{"Landsat-9", "Sentinel-2", "ASTER", "WorldView-3"}

	platformBands = map[string][]string{
		"Landsat-9":   {"coastal", "blue", "green", "red", "nir", "swir1", "swir2", "tirs1", "tirs2"},
		"Sentinel-2":  {"B2", "B3", "B4", "B8", "B8A", "B11", "B12"},
		"ASTER":       {"vnir1", "vnir2", "vnir3", "swir4", "swir5", "swir6", "swir7", "swir8", "swir9", "tir10"},
		"WorldView-3": {"coastal", "blue", "green", "yellow", "red", "red-edge", "nir1", "nir2", "swir1-8"},
	}

	// Passes are dated relative to a fixed epoch, not the wall clock.
	imageryEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

func newID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func scatter(rng *rand.Rand, b Basin) Location {
	return Location{
		Latitude:  round(b.Latitude+between(rng, -b.Radius, b.Radius), 4),
		Longitude: round(b.Longitude+between(rng, -b.Radius, b.Radius), 4),
	}
}

func generateWell(rng *rand.Rand, b Basin) WellData {
	w := WellData{
		ID:         newID(rng),
		Name:       fmt.Sprintf("%s-%03d", b.WellPrefix, 1+rng.Intn(999)),
		Basin:      b.Name,
		Operator:   pick(rng, b.Operators),
		Location:   scatter(rng, b),
		TotalDepth: round(between(rng, 1500, 5500), 0),
		Status:     pick(rng, wellStatuses),
		WellType:   pick(rng, wellTypes),
		WaterCut:   round(between(rng, 5, 85), 1),
		Porosity:   round(between(rng, 5, 30), 1),
		// Permeability spans roughly 0.1 to 300 mD, log-uniform.
		Permeability:    round(math.Pow(10, between(rng, -1, 2.5)), 2),
		ProductionTrend: DefaultProductionTrend,
	}
	if w.Status == "producing" {
		switch w.WellType {
		case "oil":
			w.OilRate = round(between(rng, 50, 2500), 0)
			w.GasRate = round(w.OilRate*between(rng, 0.5, 2), 0)
		case "gas", "condensate":
			w.GasRate = round(between(rng, 500, 15000), 0)
			w.OilRate = round(w.GasRate*between(rng, 0.005, 0.05), 0)
		}
	}
	return w
}

func generateSeismic(rng *rand.Rand, b Basin) SeismicData {
	st := pick(rng, surveyTypes)
	year := 2005 + rng.Intn(20)
	return SeismicData{
		ID:                     newID(rng),
		SurveyName:             fmt.Sprintf("%s %s-%d", b.Name, st, year),
		Basin:                  b.Name,
		Location:               scatter(rng, b),
		SurveyType:             st,
		AreaKm2:                round(between(rng, 50, 2500), 0),
		Resolution:             round(between(rng, 8, 50), 1),
		AcquisitionYear:        year,
		DataQuality:            pick(rng, dataQualities),
		HydrocarbonProbability: DefaultHydrocarbonProbability,
	}
}

func generateSatellite(rng *rand.Rand, b Basin) SatelliteData {
	platform := pick(rng, satellitePlats)
	bands := append([]string(nil), platformBands[platform]...)
	return SatelliteData{
		ID:                 newID(rng),
		Platform:           platform,
		Basin:              b.Name,
		Location:           scatter(rng, b),
		AcquiredAt:         imageryEpoch.AddDate(0, 0, rng.Intn(365)).Format("2006-01-02"),
		CloudCover:         round(between(rng, 0, 40), 1),
		SpectralBands:      bands,
		SeepageIndicators:  []string{},
		SeepageProbability: DefaultSeepageProbability,
	}
}

func generateReservoir(rng *rand.Rand, b Basin) ReservoirData {
	depth := round(between(rng, 1500, 5000), 0)
	gradient := round(between(rng, 20, 40), 1)
	return ReservoirData{
		ID:                 newID(rng),
		Basin:              b.Name,
		Formation:          pick(rng, b.Formations),
		Location:           scatter(rng, b),
		DepthTop:           depth,
		GeothermalGradient: gradient,
		Temperature:        round(15+depth*gradient/1000, 1),
		// Hydrostatic is ~10.5 MPa/km; scale it to allow over/under pressure.
		Pressure:    round(depth*0.0105*between(rng, 0.85, 1.35), 1),
		BurialAge:   round(between(rng, 20, 300), 0),
		VitriniteRo: round(between(rng, 0.3, 1.6), 2),
		RiskLevel:   DefaultRiskLevel,
	}
}
