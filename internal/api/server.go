package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/petrosight/internal/analysis"
	"github.com/MikeSquared-Agency/petrosight/internal/store"
)

type Executor interface {
	Execute(ctx context.Context, trigger string, req analysis.Request) (*analysis.Result, error)
}

type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]store.Run, error)
}

type Readiness interface {
	Ready() bool
}

// Options carries the optional collaborators. A nil Runs disables the
// runs endpoint; a nil Oracle reports the oracle as unconfigured.
type Options struct {
	Port     int
	APIToken string
	Model    string
	Oracle   Readiness
	Runs     RunLister
}

type Server struct {
	router *chi.Mux
	http   *http.Server
	exec   Executor
	opts   Options
	logger *slog.Logger
}

func NewServer(exec Executor, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		exec:   exec,
		opts:   opts,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/petrosight/status", s.status)
	router.Route("/api/v1/analysis", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken))
		r.Post("/", s.runAnalysis)
		r.Get("/runs", s.listRuns)
	})

	return s
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	oracleState := "unconfigured"
	if s.opts.Oracle != nil {
		oracleState = "uninitialized"
		if s.opts.Oracle.Ready() {
			oracleState = "ready"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":         "petrosight",
		"status":        "active",
		"model":         s.opts.Model,
		"oracle":        oracleState,
		"analysisTypes": analysis.Types(),
		"runStore":      s.opts.Runs != nil,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
