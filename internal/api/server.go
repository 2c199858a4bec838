// Package api serves the tracker's HTTP surface: health probes, the
// Prometheus endpoint and the read-only race data API backed by the latest
// snapshot.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ekiden-tracker/internal/engine"
	"github.com/yourusername/ekiden-tracker/internal/mapview"
	"github.com/yourusername/ekiden-tracker/internal/metrics"
	"github.com/yourusername/ekiden-tracker/internal/standings"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// errorResponse is the JSON body for API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the latest snapshot over HTTP.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        string
	server      *http.Server
	logger      *logrus.Logger
	refresh     *engine.RefreshService
}

// Config holds the configuration for the API server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	Refresh     *engine.RefreshService
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		logger:      cfg.Logger,
		refresh:     cfg.Refresh,
	}
}

// Handler returns the server's routing handler, also used by tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/api/standings", s.handleStandings)
	mux.HandleFunc("/api/legs", s.handleLegs)
	mux.HandleFunc("/api/legs/leaderboard", s.handleLegLeaderboard)
	mux.HandleFunc("/api/prizes", s.handlePrizes)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/mapview", s.handleMapView)
	return mux
}

// Start starts the API server in the background.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("API server starting")
		}

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("API server error")
			}
		}
	}()

	// Wait for context cancellation
	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("API server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// snapshot returns the latest snapshot, or writes a 503 when no refresh
// cycle has succeeded yet.
func (s *Server) snapshot(w http.ResponseWriter) *engine.Snapshot {
	snap := s.refresh.Store().Latest()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "data unavailable"})
		return nil
	}
	return snap
}

// handleHealth handles the /health endpoint - basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

// handleLive handles the /live endpoint - kubernetes liveness probe.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: s.serviceName,
	})
}

// handleReady handles the /ready endpoint - ready once a snapshot exists.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)

	snap := s.refresh.Store().Latest()
	ready := snap != nil
	if ready {
		checks["snapshot"] = "ok"
		checks["snapshot_age"] = time.Since(snap.FetchedAt).Truncate(time.Second).String()
	} else {
		checks["snapshot"] = "missing"
	}

	response := ReadyResponse{
		Service:  s.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if ready {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

// standingsResponse is the /api/standings body.
type standingsResponse struct {
	CycleID    string                   `json:"cycleId"`
	RaceDay    int                      `json:"raceDay"`
	UpdateTime string                   `json:"updateTime"`
	Standings  []standings.StandingsRow `json:"standings"`
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	writeJSON(w, http.StatusOK, standingsResponse{
		CycleID:    snap.CycleID.String(),
		RaceDay:    snap.RaceDay,
		UpdateTime: snap.UpdateTime,
		Standings:  snap.Standings,
	})
}

// legsResponse is the /api/legs body.
type legsResponse struct {
	RaceDay      int   `json:"raceDay"`
	ActiveLegs   []int `json:"activeLegs"`
	FinishedLegs []int `json:"finishedLegs"`
}

func (s *Server) handleLegs(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	writeJSON(w, http.StatusOK, legsResponse{
		RaceDay:      snap.RaceDay,
		ActiveLegs:   snap.ActiveLegs,
		FinishedLegs: snap.FinishedLegs,
	})
}

// leaderboardResponse is the /api/legs/leaderboard body.
type leaderboardResponse struct {
	Leg         int                        `json:"leg"`
	RaceDay     int                        `json:"raceDay"`
	Leaderboard []standings.LeaderboardRow `json:"leaderboard"`
}

func (s *Server) handleLegLeaderboard(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	leg, err := strconv.Atoi(r.URL.Query().Get("leg"))
	if err != nil || leg < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "leg must be a positive integer"})
		return
	}

	writeJSON(w, http.StatusOK, leaderboardResponse{
		Leg:         leg,
		RaceDay:     snap.RaceDay,
		Leaderboard: standings.BuildLegLeaderboard(snap.Report, snap.Results, leg),
	})
}

// prizesResponse is the /api/prizes body.
type prizesResponse struct {
	RaceDay      int                          `json:"raceDay"`
	FinishedLegs []int                        `json:"finishedLegs"`
	Prizes       map[int][]standings.PrizeRow `json:"prizes"`
}

func (s *Server) handlePrizes(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	writeJSON(w, http.StatusOK, prizesResponse{
		RaceDay:      snap.RaceDay,
		FinishedLegs: snap.FinishedLegs,
		Prizes:       snap.LegPrizes,
	})
}

// eventsResponse is the /api/events body.
type eventsResponse struct {
	RaceDay int                   `json:"raceDay"`
	Events  []standings.RankEvent `json:"events"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	writeJSON(w, http.StatusOK, eventsResponse{
		RaceDay: snap.RaceDay,
		Events:  snap.Events,
	})
}

// mapViewResponse is the /api/mapview body.
type mapViewResponse struct {
	Mode      mapview.Mode           `json:"mode"`
	Directive mapview.Directive      `json:"directive"`
	Runners   []mapview.PlacedRunner `json:"runners"`
}

func (s *Server) handleMapView(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	mode := mapview.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = mapview.ModeLeadGroup
	}

	path, err := s.refresh.CoursePath(r.Context())
	if err != nil {
		s.logger.WithError(err).Warn("Course path unavailable for map view")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "course path unavailable"})
		return
	}
	course := mapview.CourseFromPath(path)

	writeJSON(w, http.StatusOK, mapViewResponse{
		Mode:      mode,
		Directive: mapview.SelectView(snap.Locations, course, snap.FinalGoal(), mode),
		Runners:   mapview.PlaceRunners(snap.Locations, course, snap.FinalGoal()),
	})
}
