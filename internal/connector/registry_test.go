package connector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Basins) < 3 {
		t.Fatalf("expected several basins, got %d", len(reg.Basins))
	}
	for _, b := range reg.Basins {
		if b.WellPrefix == "" || len(b.Formations) == 0 || len(b.Operators) == 0 {
			t.Errorf("basin %q incomplete: %+v", b.Name, b)
		}
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basins.yaml")
	data := []byte(`basins:
  - name: Cooper Eromanga
    latitude: -27.8
    longitude: 140.5
    formations: [Patchawarra]
    operators: [Santos Ltd]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := reg.Basins[0]
	if b.WellPrefix != "COOPER" {
		t.Errorf("expected derived prefix COOPER, got %q", b.WellPrefix)
	}
	if b.Radius != 1 {
		t.Errorf("expected default radius 1, got %v", b.Radius)
	}
}

func TestParseRegistry_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":         `basins: []`,
		"no name":       "basins:\n  - formations: [A]\n    operators: [B]\n",
		"no formations": "basins:\n  - name: X\n    operators: [B]\n",
		"bad yaml":      "basins: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRegistry([]byte(doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRegistrySelect(t *testing.T) {
	reg, _ := DefaultRegistry()

	all, err := reg.Select("")
	if err != nil || len(all) != len(reg.Basins) {
		t.Fatalf("expected all basins, got %d (%v)", len(all), err)
	}
	one, err := reg.Select("santos")
	if err != nil || len(one) != 1 || one[0].Name != "Santos" {
		t.Fatalf("expected Santos, got %+v (%v)", one, err)
	}
	partial, err := reg.Select("graben")
	if err != nil || len(partial) != 1 || partial[0].Name != "Central Graben" {
		t.Fatalf("expected Central Graben, got %+v (%v)", partial, err)
	}
	if _, err := reg.Select("Atlantis"); !errors.Is(err, ErrUnknownBasin) {
		t.Fatalf("expected ErrUnknownBasin, got %v", err)
	}
}
