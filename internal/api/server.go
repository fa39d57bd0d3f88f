package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/santhosh1815/hmi/internal/diagnostics"
	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/logger"
	"github.com/santhosh1815/hmi/internal/simulation"
)

// DiagnosticsRunner is the slice of the diagnostics service the API needs
type DiagnosticsRunner interface {
	Run(ctx context.Context, sample simulation.Sample) (*diagnostics.Report, error)
	Latest() *diagnostics.Report
}

// Server exposes the control and read surface of one simulated unit over
// HTTP, plus a WebSocket live stream of produced samples.
type Server struct {
	driver   *simulation.Driver
	diag     DiagnosticsRunner
	hub      *hub
	router   *mux.Router
	interval time.Duration
	httpSrv  *http.Server
}

func NewServer(driver *simulation.Driver, diag DiagnosticsRunner, interval time.Duration) *Server {
	s := &Server{
		driver:   driver,
		diag:     diag,
		hub:      newHub(),
		router:   mux.NewRouter(),
		interval: interval,
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Add CORS middleware
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	s.router.HandleFunc("/api/telemetry", s.getTelemetry).Methods(http.MethodGet)
	s.router.HandleFunc("/api/telemetry/history", s.getHistory).Methods(http.MethodGet)
	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet)

	s.router.HandleFunc("/api/control/start", s.postStart).Methods(http.MethodPost)
	s.router.HandleFunc("/api/control/stop", s.postStop).Methods(http.MethodPost)
	s.router.HandleFunc("/api/control/load", s.postLoad).Methods(http.MethodPost)

	s.router.HandleFunc("/api/diagnostics", s.postDiagnostics).Methods(http.MethodPost)
	s.router.HandleFunc("/api/diagnostics", s.getDiagnostics).Methods(http.MethodGet)

	s.router.HandleFunc("/api/live", s.getLive).Methods(http.MethodGet)
}

// Router returns the configured handler
func (s *Server) Router() http.Handler {
	return s.router
}

// Broadcast pushes a freshly produced sample to connected live clients
func (s *Server) Broadcast(sample simulation.Sample) {
	s.hub.Broadcast(sample)
}

// Start serves the API on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpSrv.ListenAndServe()
}

// Shutdown disconnects live stream clients and gracefully stops the HTTP
// listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.shutdown()

	if s.httpSrv == nil {
		return nil
	}

	return s.httpSrv.Shutdown(ctx)
}

type statusPayload struct {
	Running     bool `json:"running"`
	TargetLoad  int  `json:"target_load"`
	HistorySize int  `json:"history_size"`
	IntervalMS  int  `json:"interval_ms"`
}

type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) getTelemetry(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Current())
}

func (s *Server) getHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.History())
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) postStart(w http.ResponseWriter, _ *http.Request) {
	s.driver.Start()
	logger.Info().Msg("Simulation started")
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) postStop(w http.ResponseWriter, _ *http.Request) {
	s.driver.Stop()
	logger.Info().Msg("Simulation stopped")
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) postLoad(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TargetLoad *int `json:"target_load"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TargetLoad == nil {
		writeError(w, http.StatusBadRequest, errors.New().WithMessage(
			simulation.ErrInvalidControlInput, "target_load must be an integer"))
		return
	}

	if err := s.driver.SetTargetLoad(*body.TargetLoad); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	logger.Info().Int("target_load", *body.TargetLoad).Msg("Target load updated")
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) postDiagnostics(w http.ResponseWriter, r *http.Request) {
	report, err := s.diag.Run(r.Context(), s.driver.Current())
	if err != nil {
		// Single-flight policy: a request while one is pending is rejected
		writeError(w, http.StatusConflict, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) getDiagnostics(w http.ResponseWriter, _ *http.Request) {
	report := s.diag.Latest()
	if report == nil {
		writeError(w, http.StatusNotFound, errors.New().WithMessage(
			errors.ErrInvalidOperation, "no diagnostics report available yet"))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) getLive(w http.ResponseWriter, r *http.Request) {
	s.hub.handle(s.driver.Current(), w, r)
}

func (s *Server) status() statusPayload {
	return statusPayload{
		Running:     s.driver.Running(),
		TargetLoad:  s.driver.TargetLoad(),
		HistorySize: s.driver.HistorySize(),
		IntervalMS:  int(s.interval / time.Millisecond),
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorPayload{
		Error: err.Error(),
		Code:  string(errors.CodeOf(err)),
	})
}
