package connector

// Location is a WGS84 point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Production trend annotations for wells.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
	TrendDeclining  = "declining"
)

// Risk level annotations for reservoir thermal histories.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Neutral annotation values used before (or instead of) enrichment.
const (
	DefaultProductionTrend        = TrendStable
	DefaultHydrocarbonProbability = 0.5
	DefaultSeepageProbability     = 0.0
	DefaultRiskLevel              = RiskMedium
)

// WellData is a well log / production record.
type WellData struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Basin        string   `json:"basin"`
	Operator     string   `json:"operator"`
	Location     Location `json:"location"`
	TotalDepth   float64  `json:"totalDepth"`   // m
	Status       string   `json:"status"`       // producing | shut-in | drilling | abandoned
	WellType     string   `json:"wellType"`     // oil | gas | condensate | dry
	OilRate      float64  `json:"oilRate"`      // bbl/d
	GasRate      float64  `json:"gasRate"`      // mcf/d
	WaterCut     float64  `json:"waterCut"`     // %
	Porosity     float64  `json:"porosity"`     // %
	Permeability float64  `json:"permeability"` // mD

	ProductionTrend string `json:"productionTrend"`
}

// SeismicData is a seismic survey record.
type SeismicData struct {
	ID              string   `json:"id"`
	SurveyName      string   `json:"surveyName"`
	Basin           string   `json:"basin"`
	Location        Location `json:"location"`
	SurveyType      string   `json:"surveyType"` // 2D | 3D | 4D
	AreaKm2         float64  `json:"areaKm2"`
	Resolution      float64  `json:"resolution"` // m, vertical
	AcquisitionYear int      `json:"acquisitionYear"`
	DataQuality     string   `json:"dataQuality"` // excellent | good | fair | poor

	HydrocarbonProbability float64 `json:"hydrocarbonProbability"` // 0–1
	Interpretation         string  `json:"interpretation"`
}

// SatelliteData is one spectral imaging pass over a basin.
type SatelliteData struct {
	ID            string   `json:"id"`
	Platform      string   `json:"platform"`
	Basin         string   `json:"basin"`
	Location      Location `json:"location"`
	AcquiredAt    string   `json:"acquiredAt"` // YYYY-MM-DD
	CloudCover    float64  `json:"cloudCover"` // %
	SpectralBands []string `json:"spectralBands"`

	SeepageIndicators  []string `json:"seepageIndicators"`
	SeepageProbability float64  `json:"seepageProbability"` // 0–1
}

// ReservoirData is a basin thermal-history record for one formation.
type ReservoirData struct {
	ID                 string   `json:"id"`
	Basin              string   `json:"basin"`
	Formation          string   `json:"formation"`
	Location           Location `json:"location"`
	DepthTop           float64  `json:"depthTop"`           // m
	Temperature        float64  `json:"temperature"`        // °C
	Pressure           float64  `json:"pressure"`           // MPa
	GeothermalGradient float64  `json:"geothermalGradient"` // °C/km
	BurialAge          float64  `json:"burialAge"`          // Ma
	VitriniteRo        float64  `json:"vitriniteRo"`        // %Ro

	RiskLevel string `json:"riskLevel"`
}

// DataType names a record collection the connector can produce.
type DataType string

const (
	DataWells      DataType = "wells"
	DataSeismic    DataType = "seismic"
	DataSatellite  DataType = "satellite"
	DataReservoirs DataType = "reservoirs"
)

// Selector narrows a fetch. An empty Basin spans every registered basin.
type Selector struct {
	Basin string `json:"basin,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

const (
	DefaultLimit = 5
	MaxLimit     = 50
)

func (s Selector) limit() int {
	switch {
	case s.Limit <= 0:
		return DefaultLimit
	case s.Limit > MaxLimit:
		return MaxLimit
	default:
		return s.Limit
	}
}
