package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sharknado-db/sharknado/pkg/log"
)

// StoreStats is the view of the storage engine the metrics server
// needs to report on
type StoreStats interface {
	Tables() []string
	Len(table string) int
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Tables    int       `json:"tables"`
	Documents int       `json:"documents"`
	Timestamp time.Time `json:"timestamp"`
}

// Server exposes /metrics and /healthz over HTTP
type Server struct {
	database string
	stats    StoreStats
	mux      *http.ServeMux
}

// NewServer creates the metrics HTTP server for a database
func NewServer(database string, stats StoreStats) *Server {
	s := &Server{
		database: database,
		stats:    stats,
		mux:      http.NewServeMux(),
	}
	s.mux.Handle("/metrics", Handler())
	s.mux.HandleFunc("/healthz", s.healthHandler)
	return s
}

// Serve runs the HTTP server until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger := log.WithComponent("metrics")
	logger.Info().Str("address", addr).Msg("starting metrics server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// Collect refreshes the store gauges every interval until ctx is
// cancelled
func (s *Server) Collect(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tables := s.stats.Tables()
			docs := 0
			for _, t := range tables {
				docs += s.stats.Len(t)
			}
			TablesTotal.Set(float64(len(tables)))
			DocumentsTotal.Set(float64(docs))
		}
	}
}

// healthHandler implements the /healthz endpoint: a liveness check
// with a small store summary
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tables := s.stats.Tables()
	docs := 0
	for _, t := range tables {
		docs += s.stats.Len(t)
	}

	response := HealthResponse{
		Status:    "healthy",
		Database:  s.database,
		Tables:    len(tables),
		Documents: docs,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}
