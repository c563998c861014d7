package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteRequest struct {
	Start      *int   `json:"start,omitempty"`
	Goal       *int   `json:"goal,omitempty"`
	StartPoint *Point `json:"startPoint,omitempty"` // snapped to the nearest intersection
	GoalPoint  *Point `json:"goalPoint,omitempty"`
}

type RouteResponse struct {
	Start          int     `json:"start"`
	Goal           int     `json:"goal"`
	Path           []int   `json:"path"`
	Points         []Point `json:"points,omitempty"`
	Success        bool    `json:"success"`
	Message        string  `json:"message,omitempty"`
	DistanceMeters float64 `json:"distanceMeters"`
	Expanded       int     `json:"expanded"`
}

type intersectionView struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// errBadRequest marks request errors that map to 400
var errBadRequest = errors.New("bad request")

// Server exposes route planning over HTTP for one road map
type Server struct {
	cfg      Config
	registry *prometheus.Registry
	metrics  *searchMetrics

	mu      sync.RWMutex
	roadMap *RoadMap
	index   *IntersectionIndex
}

// NewServer creates a server answering queries on roadMap
func NewServer(cfg Config, roadMap *RoadMap) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		registry: registry,
		metrics:  newSearchMetrics(registry),
	}
	s.SetRoadMap(roadMap)
	return s
}

// SetRoadMap swaps the road map and its index. In-flight requests keep
// the map they started with.
func (s *Server) SetRoadMap(roadMap *RoadMap) {
	index := NewIntersectionIndex(roadMap)

	s.mu.Lock()
	s.roadMap = roadMap
	s.index = index
	s.mu.Unlock()
}

func (s *Server) snapshot() (*RoadMap, *IntersectionIndex) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roadMap, s.index
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.HandleFunc("/intersections", corsMiddleware(s.intersectionsHandler))
	mux.HandleFunc("/map/lines", corsMiddleware(s.mapLinesHandler))
	mux.Handle(s.cfg.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// ListenAndServe serves the API on the configured address
func (s *Server) ListenAndServe() error {
	roadMap, _ := s.snapshot()

	log.Println("========================================")
	log.Println("🚀 Route Planner Server")
	log.Println("========================================")
	log.Printf("   Intersections: %d, roads: %d\n", len(roadMap.Intersections), roadMap.RoadCount())
	log.Println("Endpoints:")
	log.Println("  POST /route              - Shortest route between two intersections")
	log.Println("  GET  /intersections      - Intersections inside ?bbox=minX,minY,maxX,maxY")
	log.Println("  GET  /map/lines          - Road segments for visualization")
	log.Println("  GET  /health             - Check server status")
	log.Printf("  GET  %-18s - Prometheus metrics\n", s.cfg.MetricsPath)
	log.Printf("Server starting on %s\n", s.cfg.Listen)

	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		s.metrics.observe(Result{}, err, 0)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	roadMap, index := s.snapshot()

	start, err := s.resolveEndpoint(index, "start", req.Start, req.StartPoint)
	if err != nil {
		s.metrics.observe(Result{}, err, 0)
		s.writeRequestError(w, err)
		return
	}
	goal, err := s.resolveEndpoint(index, "goal", req.Goal, req.GoalPoint)
	if err != nil {
		s.metrics.observe(Result{}, err, 0)
		s.writeRequestError(w, err)
		return
	}

	log.Printf("📍 Route request: %d → %d\n", start, goal)

	began := time.Now()
	planner, err := NewPathPlanner(roadMap, WithStart(start), WithGoal(goal))
	var result Result
	if err == nil {
		result, _ = planner.Result()
	}
	s.metrics.observe(result, err, time.Since(began))

	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "geojson" {
		w.Header().Set("Content-Type", "application/geo+json")
		json.NewEncoder(w).Encode(RouteFeatureCollection(roadMap, result))
		return
	}

	response := RouteResponse{
		Start:    start,
		Goal:     goal,
		Path:     result.Path,
		Success:  result.Found,
		Expanded: result.Expanded,
	}
	if result.Found {
		response.DistanceMeters = result.Cost
		for _, id := range result.Path {
			response.Points = append(response.Points, roadMap.Intersections[id])
		}
		log.Printf("✅ Path found with %d intersections, %.4f m\n", len(result.Path), result.Cost)
	} else {
		response.Path = []int{}
		response.Message = "No path found"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// resolveEndpoint picks the intersection id from the request, snapping a
// point to the nearest intersection when no id is given
func (s *Server) resolveEndpoint(index *IntersectionIndex, name string, id *int, point *Point) (int, error) {
	if id != nil {
		return *id, nil
	}
	if point == nil {
		return 0, fmt.Errorf("%w: %s or %sPoint is required", errBadRequest, name, name)
	}

	nearest, dist, ok := index.Nearest(*point)
	if !ok {
		return 0, fmt.Errorf("%w: road map has no intersections", errBadRequest)
	}
	if s.cfg.MaxSnapDistance > 0 && dist > s.cfg.MaxSnapDistance {
		return 0, fmt.Errorf("%w: %s point is %.4f from the nearest intersection (limit %.4f)",
			errBadRequest, name, dist, s.cfg.MaxSnapDistance)
	}
	return nearest, nil
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	log.Printf("❌ %v\n", err)
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, ErrInvalidState), errors.Is(err, ErrMissingInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	roadMap, _ := s.snapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "ready",
		"intersections": len(roadMap.Intersections),
		"roads":         roadMap.RoadCount(),
	})
}

// GET /intersections?bbox=minX,minY,maxX,maxY
func (s *Server) intersectionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	roadMap, index := s.snapshot()

	var ids []int
	if raw := r.URL.Query().Get("bbox"); raw != "" {
		box, err := parseBoundingBox(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ids, err = index.Within(box)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		ids = roadMap.IntersectionIDs()
	}

	views := make([]intersectionView, 0, len(ids))
	for _, id := range ids {
		p := roadMap.Intersections[id]
		views = append(views, intersectionView{ID: id, X: p.X, Y: p.Y})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"intersections": views,
		"count":         len(views),
	})
}

// GET /map/lines - Road segments as line strings for visualization
func (s *Server) mapLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	roadMap, _ := s.snapshot()
	lines := roadMap.LineStrings()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": len(roadMap.Intersections),
		"numEdges": len(lines),
	})
}

func parseBoundingBox(raw string) (BoundingBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bbox needs 4 values, got %d", len(parts))
	}

	var values [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bbox value %q: %w", part, err)
		}
		values[i] = v
	}

	return BoundingBox{MinX: values[0], MinY: values[1], MaxX: values[2], MaxY: values[3]}, nil
}
