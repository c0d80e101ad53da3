package extraction

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    int
		wantOK  bool
	}{
		{"colon separated", "porosity score: 82", "porosity", 82, true},
		{"percent suffix", "permeability indicator 77%", "permeability", 77, true},
		{"case insensitive", "Diagenetic Alteration = 20", "diagenetic", 20, true},
		{"decimal rounds", "weathering 54.6", "weathering", 55, true},
		{"zero allowed", "weathering 0", "weathering", 0, true},
		{"hundred allowed", "porosity 100", "porosity", 100, true},
		{"above range is absent", "porosity 250", "porosity", 0, false},
		{"keyword missing", "permeability 40", "porosity", 0, false},
		{"no number after keyword", "porosity is good", "porosity", 0, false},
		{"gap too long", "porosity" + fmt.Sprintf("%070s", "") + "40", "porosity", 0, false},
		{"empty text", "", "porosity", 0, false},
		{"first match wins", "porosity 30, later porosity 90", "porosity", 30, true},
		{"regex metacharacters in keyword", "toc (wt%) 4", "toc (wt%)", 4, true},
		{"keyword inside another word", "stock 12", "toc", 0, false},
		{"negative is absent", "porosity score: -20", "porosity", 0, false},
		{"hyphenated word before value", "porosity-related score 40", "porosity", 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractScore(tt.text, tt.keyword)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractScore(%q, %q) = (%d, %v), want (%d, %v)", tt.text, tt.keyword, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractScore_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		text := fmt.Sprintf("porosity %d.%d and more text %d", rng.Intn(100000)-500, rng.Intn(10), rng.Intn(1000))
		if got, ok := ExtractScore(text, "porosity"); ok && (got < 0 || got > 100) {
			t.Fatalf("ExtractScore(%q) = %d, outside 0–100", text, got)
		}
	}
}

func TestExtractFloat(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    float64
		wantOK  bool
	}{
		{"per km", "fracture 3.1 per km", "fracture", 3.1, true},
		{"integer", "thickness: 45 m", "thickness", 45, true},
		{"vitrinite", "thermal maturity (Ro) 0.85%", "maturity", 0.85, true},
		{"large values pass", "spill point at 2800 m", "spill", 2800, true},
		{"missing", "nothing here", "fracture", 0, false},
		{"negative is absent", "displacement -12 m", "displacement", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFloat(tt.text, tt.keyword)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractFloat(%q, %q) = (%v, %v), want (%v, %v)", tt.text, tt.keyword, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractSigned(t *testing.T) {
	if got, ok := ExtractSigned("overall prospectivity -20", "prospectivity"); !ok || got != -20 {
		t.Errorf("ExtractSigned negative = (%v, %v), want (-20, true)", got, ok)
	}
	if got, ok := ExtractSigned("prospectivity: 42.5", "prospectivity"); !ok || got != 42.5 {
		t.Errorf("ExtractSigned positive = (%v, %v), want (42.5, true)", got, ok)
	}
	if _, ok := ExtractSigned("no value", "prospectivity"); ok {
		t.Error("expected no match")
	}
}

func TestAfter(t *testing.T) {
	text := "Stratigraphic potential is 40. Trap Type: Combination, fault-bounded."
	if got := After(text, "trap type", 13); got != ": combination" {
		t.Errorf("After = %q", got)
	}
	if got := After(text, "closure", 10); got != "" {
		t.Errorf("expected empty for missing anchor, got %q", got)
	}
	if got, ok := ExtractTrapType(After(text, "trap type", 30)); !ok || got != TrapCombination {
		t.Errorf("expected combination from anchored text, got (%q, %v)", got, ok)
	}
}
