package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrInitialization marks a failure to construct the backing client.
// It is the one oracle failure callers must not swallow.
var ErrInitialization = errors.New("oracle initialization failed")

// Request is a single text-generation call.
type Request struct {
	System      string
	User        string
	Temperature *float64 // nil uses the backend default
	MaxTokens   int      // 0 uses the backend default
}

// Oracle turns a system + user prompt into free-form analysis text.
type Oracle interface {
	Analyze(ctx context.Context, req Request) (string, error)
}

// Factory builds the backing client. It is called until it succeeds once.
type Factory func() (Oracle, error)

// Temperature is a convenience for filling Request.Temperature.
func Temperature(t float64) *float64 { return &t }

// Adapter lazily constructs an Oracle and shares it for its lifetime.
// States: uninitialized (client == nil) and ready (client != nil).
type Adapter struct {
	factory Factory
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	client Oracle
}

func NewAdapter(factory Factory, timeout time.Duration, logger *slog.Logger) *Adapter {
	return &Adapter{factory: factory, timeout: timeout, logger: logger}
}

// Init moves the adapter to ready. It is a no-op once ready; a factory
// failure leaves the adapter uninitialized and returns ErrInitialization.
func (a *Adapter) Init() error {
	_, err := a.ready()
	return err
}

// Ready reports whether the backing client has been constructed.
func (a *Adapter) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.client != nil
}

func (a *Adapter) ready() (Oracle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}
	if a.factory == nil {
		return nil, fmt.Errorf("%w: no factory configured", ErrInitialization)
	}
	c, err := a.factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: factory returned nil client", ErrInitialization)
	}
	a.client = c
	a.logger.Info("oracle ready")
	return c, nil
}

// Analyze initializes the adapter if needed and runs one bounded call.
func (a *Adapter) Analyze(ctx context.Context, req Request) (string, error) {
	c, err := a.ready()
	if err != nil {
		return "", err
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := c.Analyze(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("oracle call timed out after %s: %w", a.timeout, err)
		}
		return "", fmt.Errorf("oracle call: %w", err)
	}
	return text, nil
}

// Func adapts a plain function to Oracle.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Analyze(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
