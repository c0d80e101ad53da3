package connector

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed basins.yaml
var defaultRegistryYAML []byte

var ErrUnknownBasin = errors.New("unknown basin")

// Basin describes one sedimentary basin the synthetic generators sample from.
type Basin struct {
	Name       string   `yaml:"name"`
	Region     string   `yaml:"region"`
	Latitude   float64  `yaml:"latitude"`
	Longitude  float64  `yaml:"longitude"`
	Radius     float64  `yaml:"radius"` // degrees
	WellPrefix string   `yaml:"well_prefix"`
	Formations []string `yaml:"formations"`
	Operators  []string `yaml:"operators"`
}

// Registry stands in for the external well/seismic/satellite registries.
type Registry struct {
	Basins []Basin `yaml:"basins"`
}

// DefaultRegistry returns the embedded basin registry.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultRegistryYAML)
}

// LoadRegistry reads a registry file from disk.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(reg.Basins) == 0 {
		return nil, fmt.Errorf("registry has no basins")
	}
	for i, b := range reg.Basins {
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("basin %d: name is required", i)
		}
		if len(b.Formations) == 0 {
			return nil, fmt.Errorf("basin %q: at least one formation is required", b.Name)
		}
		if len(b.Operators) == 0 {
			return nil, fmt.Errorf("basin %q: at least one operator is required", b.Name)
		}
		if b.Radius <= 0 {
			reg.Basins[i].Radius = 1
		}
		if b.WellPrefix == "" {
			reg.Basins[i].WellPrefix = strings.ToUpper(strings.Fields(b.Name)[0])
		}
	}
	return &reg, nil
}

// Select returns the basins matching name, or all basins for "".
func (r *Registry) Select(name string) ([]Basin, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r.Basins, nil
	}
	for _, b := range r.Basins {
		if strings.EqualFold(b.Name, name) {
			return []Basin{b}, nil
		}
	}
	var matches []Basin
	lower := strings.ToLower(name)
	for _, b := range r.Basins {
		if strings.Contains(strings.ToLower(b.Name), lower) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBasin, name)
	}
	return matches, nil
}
