package connector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/petrosight/internal/extraction"
	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
)

var errNoAnnotation = errors.New("no annotation in oracle reply")

// enrichAll annotates every record with at most c.concurrency oracle calls
// in flight. A failed record keeps its default annotation; the result
// always has len(records) entries in input order.
func enrichAll[T any](ctx context.Context, c *Connector, kind string, records []T, fn func(context.Context, T) (T, error)) []T {
	if c.oracle == nil || len(records) == 0 {
		return records
	}

	out := make([]T, len(records))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			enriched, err := fn(ctx, rec)
			if err != nil {
				c.logger.Warn("enrichment failed, keeping defaults", "kind", kind, "index", i, "error", err)
				out[i] = rec
				return nil
			}
			out[i] = enriched
			return nil
		})
	}
	_ = g.Wait() // failures are absorbed per record

	c.logger.Debug("enrichment complete", "kind", kind, "records", len(out))
	return out
}

func (c *Connector) ask(ctx context.Context, prompt string, record any) (string, error) {
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return c.oracle.Analyze(ctx, oracle.Request{
		System:      enrichSystemPrompt,
		User:        fmt.Sprintf(prompt, payload),
		Temperature: oracle.Temperature(0.2),
		MaxTokens:   256,
	})
}

func (c *Connector) enrichWell(ctx context.Context, w WellData) (WellData, error) {
	text, err := c.ask(ctx, wellPrompt, w)
	if err != nil {
		return w, err
	}

	var reply struct {
		ProductionTrend string `json:"productionTrend"`
	}
	trend, ok := "", false
	if extraction.DecodeJSON(text, &reply) == nil {
		trend, ok = parseTrend(reply.ProductionTrend)
	}
	if !ok {
		trend, ok = parseTrend(text)
	}
	if !ok {
		return w, errNoAnnotation
	}
	w.ProductionTrend = trend
	return w, nil
}

func (c *Connector) enrichSeismic(ctx context.Context, s SeismicData) (SeismicData, error) {
	text, err := c.ask(ctx, seismicPrompt, s)
	if err != nil {
		return s, err
	}

	var reply struct {
		HydrocarbonProbability *float64 `json:"hydrocarbonProbability"`
		Interpretation         string   `json:"interpretation"`
	}
	structured := extraction.DecodeJSON(text, &reply) == nil

	p, ok := 0.0, false
	if structured {
		p, ok = probability(reply.HydrocarbonProbability)
	}
	if !ok {
		p, ok = probabilityFromText(text)
	}
	if !ok {
		return s, errNoAnnotation
	}
	s.HydrocarbonProbability = p
	if structured {
		s.Interpretation = strings.TrimSpace(reply.Interpretation)
	}
	return s, nil
}

func (c *Connector) enrichSatellite(ctx context.Context, s SatelliteData) (SatelliteData, error) {
	text, err := c.ask(ctx, satellitePrompt, s)
	if err != nil {
		return s, err
	}

	var reply struct {
		SeepageIndicators  []string `json:"seepageIndicators"`
		SeepageProbability *float64 `json:"seepageProbability"`
	}
	structured := extraction.DecodeJSON(text, &reply) == nil

	p, ok := 0.0, false
	if structured {
		p, ok = probability(reply.SeepageProbability)
	}
	if !ok {
		p, ok = probabilityFromText(text)
	}
	if !ok {
		return s, errNoAnnotation
	}

	source := text
	if structured {
		source = strings.Join(reply.SeepageIndicators, "; ")
	}
	s.SeepageIndicators = seepageIndicators(source)
	s.SeepageProbability = p
	return s, nil
}

func (c *Connector) enrichReservoir(ctx context.Context, r ReservoirData) (ReservoirData, error) {
	text, err := c.ask(ctx, reservoirPrompt, r)
	if err != nil {
		return r, err
	}

	var reply struct {
		RiskLevel string `json:"riskLevel"`
	}
	risk, ok := "", false
	if extraction.DecodeJSON(text, &reply) == nil {
		risk, ok = parseRiskLevel(reply.RiskLevel)
	}
	if !ok {
		risk, ok = riskFromText(text)
	}
	if !ok {
		return r, errNoAnnotation
	}
	r.RiskLevel = risk
	return r, nil
}

var trendRules = []struct {
	trend   string
	pattern *regexp.Regexp
}{
	{TrendDeclining, regexp.MustCompile(`(?i)\b(?:declin\w*|decreas\w*|falling)\b`)},
	{TrendIncreasing, regexp.MustCompile(`(?i)\b(?:increas\w*|rising|growing)\b`)},
	{TrendStable, regexp.MustCompile(`(?i)\b(?:stable|flat|plateau\w*)\b`)},
}

func parseTrend(s string) (string, bool) {
	for _, r := range trendRules {
		if r.pattern.MatchString(s) {
			return r.trend, true
		}
	}
	return "", false
}

var (
	riskWord    = regexp.MustCompile(`(?i)^\s*(low|medium|moderate|high)\s*$`)
	riskPattern = regexp.MustCompile(`(?i)\b(low|medium|moderate|high)[\s-]+risk\b|\brisk(?:\s+level)?\s*(?:is|:|=|-)?\s*(low|medium|moderate|high)\b`)
)

func normalizeRisk(s string) string {
	switch strings.ToLower(s) {
	case "low":
		return RiskLow
	case "high":
		return RiskHigh
	default:
		return RiskMedium
	}
}

func parseRiskLevel(s string) (string, bool) {
	m := riskWord.FindStringSubmatch(s)
	if m == nil {
		return riskFromText(s)
	}
	return normalizeRisk(m[1]), true
}

func riskFromText(text string) (string, bool) {
	m := riskPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return normalizeRisk(m[1]), true
	}
	return normalizeRisk(m[2]), true
}

// probability accepts either a 0–1 fraction or a 0–100 percentage.
func probability(v *float64) (float64, bool) {
	f, ok := extraction.Measure(v)
	if !ok || f > 100 {
		return 0, false
	}
	if f > 1 {
		f /= 100
	}
	return round(f, 3), true
}

func probabilityFromText(text string) (float64, bool) {
	v, ok := extraction.ExtractFloat(text, "probability")
	if !ok {
		return 0, false
	}
	return probability(&v)
}

var knownSeepage = []string{
	"oil slick",
	"gas seep",
	"vegetation stress",
	"mineral alteration",
	"bleached red beds",
	"thermal anomaly",
}

// seepageIndicators returns the known indicator names mentioned in s, in
// table order. The result is never nil.
func seepageIndicators(s string) []string {
	lower := strings.ToLower(s)
	out := []string{}
	for _, name := range knownSeepage {
		if strings.Contains(lower, name) {
			out = append(out, name)
		}
	}
	return out
}
