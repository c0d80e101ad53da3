package features

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  float64
	}{
		{"overall prospectivity phrase", "Weighing all four, overall prospectivity 42.", 42},
		{"structured", `{"overallProspectivity": 77}`, 77},
		{"structured rounds", `{"overallProspectivity": 58.6}`, 59},
		{"score keyword", "Composite score: 58", 58},
		{"overall keyword", "Overall, 61 out of 100", 61},
		{"prospectivity preferred over score", "score 10 ... prospectivity 80", 80},
		{"clamped high", "prospectivity 140", 100},
		{"structured clamped high", `{"overallProspectivity": 250}`, 100},
		{"negative clamped low", "overall prospectivity -20", 0},
		{"structured negative clamped low", `{"overallProspectivity": -5}`, 0},
		{"no number", "The prospect looks encouraging.", DefaultProspectivity},
		{"empty reply", "", DefaultProspectivity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := oracle.Func(func(context.Context, oracle.Request) (string, error) { return tt.reply, nil })
			got := New(o, discardLogger()).Aggregate(context.Background(), FallbackIndices().Stages)
			if got != tt.want {
				t.Errorf("Aggregate(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestAggregate_OracleFailure(t *testing.T) {
	if got := New(failing(), discardLogger()).Aggregate(context.Background(), Stages{}); got != DefaultProspectivity {
		t.Errorf("expected %d, got %v", DefaultProspectivity, got)
	}
}

func TestAggregate_PromptCarriesRubric(t *testing.T) {
	var user string
	o := oracle.Func(func(_ context.Context, req oracle.Request) (string, error) {
		user = req.User
		return "prospectivity 50", nil
	})
	New(o, discardLogger()).Aggregate(context.Background(), FallbackIndices().Stages)

	for _, want := range []string{"Reservoir quality: 25%", "Trap configuration: 25%", `"tocProxy": 65`, `"trapType": "structural"`} {
		if !strings.Contains(user, want) {
			t.Errorf("aggregate prompt missing %q", want)
		}
	}
}

func TestAggregate_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		reply := fmt.Sprintf("overall prospectivity %d.%d", rng.Intn(10000)-100, rng.Intn(10))
		o := oracle.Func(func(context.Context, oracle.Request) (string, error) { return reply, nil })
		got := New(o, discardLogger()).Aggregate(context.Background(), Stages{})
		if got < 0 || got > 100 {
			t.Fatalf("Aggregate(%q) = %v, outside [0,100]", reply, got)
		}
	}
}
