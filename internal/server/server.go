// Package server exposes the planner and the vehicle model over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"dubins-planner/geometry"
	"dubins-planner/internal/config"
	"dubins-planner/planner"
	"dubins-planner/scenario"
	"dubins-planner/vehicle"
)

const (
	// maxDiscretization keeps a single request from building a huge grid
	maxDiscretization = 100
	maxControls       = 10000
	maxBodyBytes      = 4 << 20
)

type PlanRequest struct {
	Area           scenario.OperatingArea          `json:"area"`
	Start          geometry.Waypoint               `json:"start"`
	End            geometry.Waypoint               `json:"end"`
	Obstacles      []scenario.Obstacle             `json:"obstacles,omitempty"`
	SpeedRegions   []scenario.SpeedReductionRegion `json:"speedRegions,omitempty"`
	Strategy       string                          `json:"strategy,omitempty"`
	Discretization int                             `json:"discretization,omitempty"`
	// Speed enables the travel time estimate
	Speed float64 `json:"speed,omitempty"`
}

type PlanResponse struct {
	Path       planner.Path    `json:"path"`
	Outcome    planner.Outcome `json:"outcome"`
	Cost       float64         `json:"cost"`
	Length     float64         `json:"length"`
	TravelTime float64         `json:"travelTime,omitempty"`
	Expanded   int             `json:"expanded"`
	RequestID  string          `json:"requestId"`
}

type SimulateRequest struct {
	Car      vehicle.Car       `json:"car"`
	Controls []vehicle.Control `json:"controls"`
}

type SimulateResponse struct {
	States    []geometry.Waypoint `json:"states"`
	RequestID string              `json:"requestId"`
}

// Server holds the handlers and their shared settings
type Server struct {
	cfg     config.Config
	limiter *rate.Limiter
	logger  *log.Logger
}

// New creates a server. A nil logger uses the standard logger.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	limit := rate.Inf
	if cfg.RateLimit.PerSecond > 0 {
		limit = rate.Limit(cfg.RateLimit.PerSecond)
	}
	burst := cfg.RateLimit.Burst
	if burst < 1 {
		burst = 1
	}

	return &Server{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Handler returns the routed handler with every middleware applied
func (s *Server) Handler() http.Handler {
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return requestIDMiddleware(corsMiddleware(s.rateLimitMiddleware(h)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/plan", wrap(s.planHandler))
	mux.HandleFunc("/simulate", wrap(s.simulateHandler))
	mux.HandleFunc("/health", requestIDMiddleware(corsMiddleware(s.healthHandler)))
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Println("========================================")
	s.logger.Println("🚀 Dubins Motion Planner Server")
	s.logger.Println("========================================")
	s.logger.Printf("Server starting on %s\n", s.cfg.Addr)
	s.logger.Println("")
	s.logger.Println("Endpoints:")
	s.logger.Println("  POST /plan      - Plan a route through a scenario")
	s.logger.Println("  POST /simulate  - Integrate vehicle controls")
	s.logger.Println("  GET  /health    - Check server status")
	s.logger.Println("")
	s.logger.Printf("Default strategy: %s, grid N=%d\n", s.cfg.Strategy, s.cfg.Planner.Discretization)
	s.logger.Println("CORS enabled for all origins")
	s.logger.Println("========================================")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Context())
	s.logger.Println("========================================")
	s.logger.Printf("📍 Plan request received [%s]\n", id)
	defer s.logger.Println("========================================")

	if r.Method != http.MethodPost {
		s.logger.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := decode(w, r, &req); err != nil {
		s.logger.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.logger.Printf("   Start: (%.6f, %.6f)\n", req.Start.X, req.Start.Y)
	s.logger.Printf("   End:   (%.6f, %.6f)\n", req.End.X, req.End.Y)
	s.logger.Printf("   Obstacles: %d, speed regions: %d\n", len(req.Obstacles), len(req.SpeedRegions))

	cfg := s.cfg.Planner
	if req.Discretization != 0 {
		if req.Discretization < 1 || req.Discretization > maxDiscretization {
			s.logger.Printf("❌ Discretization out of range: %d\n", req.Discretization)
			http.Error(w, fmt.Sprintf("discretization must be in [1, %d]", maxDiscretization), http.StatusBadRequest)
			return
		}
		cfg.Discretization = req.Discretization
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	p, err := planner.New(strategy, cfg, s.logger)
	if err != nil {
		s.logger.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := scenario.New(req.Area, req.Start, req.End,
		scenario.Normalize(req.Obstacles, s.cfg.Scenario), req.SpeedRegions)
	if err != nil {
		s.logger.Printf("❌ Invalid scenario: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.cfg.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Budget)
		defer cancel()
	}

	s.logger.Printf("🔍 Planning with %s strategy...\n", strategy)
	start := time.Now()
	res := planner.PlanWithin(ctx, p, sc)

	resp := PlanResponse{
		Path:      res.Path,
		Outcome:   res.Outcome,
		Cost:      res.Cost,
		Length:    planner.PathLength(res.Path),
		Expanded:  res.Expanded,
		RequestID: id,
	}
	if req.Speed > 0 {
		resp.TravelTime = planner.TravelTime(sc, res.Path, req.Speed)
	}

	if res.Outcome.Fallback() {
		s.logger.Printf("⚠️  Returning direct path (%s)\n", res.Outcome)
	} else {
		s.logger.Printf("✅ Path found with %d waypoints in %s\n", len(res.Path), time.Since(start))
	}
	s.logger.Printf("   Length: %.2f, cost: %.2f, expanded: %d\n", resp.Length, resp.Cost, resp.Expanded)

	writeJSON(w, s.logger, resp)
}

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Context())
	s.logger.Printf("🚗 Simulate request received [%s]\n", id)

	if r.Method != http.MethodPost {
		s.logger.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SimulateRequest
	if err := decode(w, r, &req); err != nil {
		s.logger.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Car.MinTurnRadius <= 0 {
		http.Error(w, "car.minTurnRadius must be positive", http.StatusBadRequest)
		return
	}
	if len(req.Controls) > maxControls {
		http.Error(w, fmt.Sprintf("at most %d controls per request", maxControls), http.StatusBadRequest)
		return
	}

	car := vehicle.NewCar(req.Car.Waypoint(), req.Car.MinTurnRadius, req.Car.Speed)
	states := vehicle.Trace(car, req.Controls)
	s.logger.Printf("   Integrated %d controls\n", len(req.Controls))

	writeJSON(w, s.logger, SimulateResponse{States: states, RequestID: id})
}

// GET /health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]interface{}{
		"status":         "ready",
		"strategy":       s.cfg.Strategy,
		"discretization": s.cfg.Planner.Discretization,
		"maxWaypoints":   s.cfg.Planner.MaxWaypoints,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Printf("⚠️  Failed to write response: %v\n", err)
	}
}
