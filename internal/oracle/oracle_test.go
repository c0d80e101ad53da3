package oracle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdapter_InitOnce(t *testing.T) {
	var builds atomic.Int32
	factory := func() (Oracle, error) {
		builds.Add(1)
		return Func(func(ctx context.Context, req Request) (string, error) {
			return "ok:" + req.User, nil
		}), nil
	}

	a := NewAdapter(factory, time.Second, discardLogger())
	if a.Ready() {
		t.Fatal("expected adapter to start uninitialized")
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := a.Analyze(context.Background(), Request{User: "x"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := a.Init(); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	if !a.Ready() {
		t.Fatal("expected adapter to be ready")
	}
	if n := builds.Load(); n != 1 {
		t.Errorf("expected factory to run once, ran %d times", n)
	}
}

func TestAdapter_InitFailureIsFatalAndRetried(t *testing.T) {
	var attempts int
	factory := func() (Oracle, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("missing api key")
		}
		return Func(func(context.Context, Request) (string, error) { return "fine", nil }), nil
	}

	a := NewAdapter(factory, 0, discardLogger())

	err := a.Init()
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("expected ErrInitialization, got %v", err)
	}
	if a.Ready() {
		t.Fatal("expected adapter to stay uninitialized after failure")
	}

	text, err := a.Analyze(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected second attempt to succeed, got %v", err)
	}
	if text != "fine" {
		t.Errorf("expected 'fine', got %q", text)
	}
}

func TestAdapter_NilFactory(t *testing.T) {
	a := NewAdapter(nil, 0, discardLogger())
	if _, err := a.Analyze(context.Background(), Request{}); !errors.Is(err, ErrInitialization) {
		t.Fatalf("expected ErrInitialization, got %v", err)
	}
}

func TestAdapter_Timeout(t *testing.T) {
	slow := Func(func(ctx context.Context, req Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	a := NewAdapter(func() (Oracle, error) { return slow, nil }, 20*time.Millisecond, discardLogger())

	start := time.Now()
	_, err := a.Analyze(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if errors.Is(err, ErrInitialization) {
		t.Fatalf("timeout must not look like an init failure: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout not enforced, took %s", time.Since(start))
	}
}
