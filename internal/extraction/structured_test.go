package extraction

import (
	"errors"
	"testing"
)

type sample struct {
	Porosity *float64 `json:"porosityProxy"`
	Kerogen  string   `json:"kerogenType"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"bare object", `{"porosityProxy": 71, "kerogenType": "II"}`, 71},
		{"fenced", "Here you go:\n```json\n{\"porosityProxy\": 64}\n```\n", 64},
		{"prose around", `Assessment follows. {"porosityProxy": 58} Hope this helps.`, 58},
		{"two objects, first wins", `{"porosityProxy": 40} and {"porosityProxy": 90}`, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			if err := DecodeJSON(tt.text, &s); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Porosity == nil || *s.Porosity != tt.want {
				t.Errorf("expected porosity %v, got %v", tt.want, s.Porosity)
			}
		})
	}
}

func TestDecodeJSON_NoObject(t *testing.T) {
	for _, text := range []string{"", "porosity score: 82", "{not json}", "{"} {
		var s sample
		if err := DecodeJSON(text, &s); !errors.Is(err, ErrNoJSON) {
			t.Errorf("DecodeJSON(%q) error = %v, want ErrNoJSON", text, err)
		}
	}
}

func TestScoreAndMeasure(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	if s, ok := Score(f(64.4)); !ok || s != 64 {
		t.Errorf("Score(64.4) = (%d, %v)", s, ok)
	}
	if _, ok := Score(f(101)); ok {
		t.Error("expected 101 to be rejected")
	}
	if _, ok := Score(nil); ok {
		t.Error("expected nil to be absent")
	}
	if m, ok := Measure(f(3.2)); !ok || m != 3.2 {
		t.Errorf("Measure(3.2) = (%v, %v)", m, ok)
	}
	if _, ok := Measure(f(-1)); ok {
		t.Error("expected negative measurement to be rejected")
	}
}
