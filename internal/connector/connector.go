package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
)

const (
	DefaultSeed        = 42
	DefaultConcurrency = 4
)

var ErrUnsupportedDataType = errors.New("unsupported data type")

type Options struct {
	Registry    *Registry  // nil uses the embedded registry
	Rand        *rand.Rand // nil seeds with DefaultSeed
	Concurrency int        // enrichment calls in flight; <=0 uses DefaultConcurrency
}

// Connector produces acquisition records and, when an oracle is set,
// annotates each record with one oracle call.
type Connector struct {
	oracle      oracle.Oracle
	registry    *Registry
	concurrency int
	logger      *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a connector. A nil oracle disables enrichment.
func New(o oracle.Oracle, opts Options, logger *slog.Logger) (*Connector, error) {
	reg := opts.Registry
	if reg == nil {
		var err error
		if reg, err = DefaultRegistry(); err != nil {
			return nil, fmt.Errorf("default registry: %w", err)
		}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Connector{
		oracle:      o,
		registry:    reg,
		concurrency: concurrency,
		logger:      logger,
		rng:         rng,
	}, nil
}

// Registry returns the basin registry the connector samples from.
func (c *Connector) Registry() *Registry {
	return c.registry
}

// sample draws n records round-robin across the selected basins while
// holding the rng lock, so concurrent fetches stay reproducible per call.
func sample[T any](c *Connector, sel Selector, gen func(*rand.Rand, Basin) T) ([]T, error) {
	basins, err := c.registry.Select(sel.Basin)
	if err != nil {
		return nil, err
	}
	n := sel.limit()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, n)
	for i := range out {
		out[i] = gen(c.rng, basins[i%len(basins)])
	}
	return out, nil
}

// Wells returns well records, enriched with a production trend.
func (c *Connector) Wells(ctx context.Context, sel Selector) ([]WellData, error) {
	base, err := sample(c, sel, generateWell)
	if err != nil {
		return nil, err
	}
	return enrichAll(ctx, c, "well", base, c.enrichWell), nil
}

// Seismic returns survey records, enriched with a hydrocarbon probability.
func (c *Connector) Seismic(ctx context.Context, sel Selector) ([]SeismicData, error) {
	base, err := sample(c, sel, generateSeismic)
	if err != nil {
		return nil, err
	}
	return enrichAll(ctx, c, "seismic", base, c.enrichSeismic), nil
}

// Satellite returns imaging passes, enriched with seepage indicators.
func (c *Connector) Satellite(ctx context.Context, sel Selector) ([]SatelliteData, error) {
	base, err := sample(c, sel, generateSatellite)
	if err != nil {
		return nil, err
	}
	return enrichAll(ctx, c, "satellite", base, c.enrichSatellite), nil
}

// Reservoirs returns basin thermal histories, enriched with a risk level.
func (c *Connector) Reservoirs(ctx context.Context, sel Selector) ([]ReservoirData, error) {
	base, err := sample(c, sel, generateReservoir)
	if err != nil {
		return nil, err
	}
	return enrichAll(ctx, c, "reservoir", base, c.enrichReservoir), nil
}

// Fetch dispatches on a DataType name.
func (c *Connector) Fetch(ctx context.Context, dt DataType, sel Selector) (any, error) {
	switch dt {
	case DataWells:
		return c.Wells(ctx, sel)
	case DataSeismic:
		return c.Seismic(ctx, sel)
	case DataSatellite:
		return c.Satellite(ctx, sel)
	case DataReservoirs:
		return c.Reservoirs(ctx, sel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDataType, dt)
	}
}
