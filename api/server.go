// Package api - Thin HTTP layer over the mileage engine
// The API is ONLY responsible for: input decoding, region resolution,
// engine invocation, output serialization.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"mileage/core/engine"
	"mileage/core/types"
	apperrors "mileage/internal/errors"
)

// DefaultMaxBodyBytes limits request bodies when no limit is configured
const DefaultMaxBodyBytes = 1 << 20

// ServerOptions tunes request handling
type ServerOptions struct {
	// MaxBodyBytes limits request bodies, DefaultMaxBodyBytes when unset
	MaxBodyBytes int64

	// AllowedOrigins enables CORS for the listed origins, "*" for any
	AllowedOrigins []string
}

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	root    http.Handler
	version string
	maxBody int64
	origins []string
	stats   Stats
}

// NewServer creates a new API server
func NewServer(version string, handler *Handler, opts ServerOptions) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		handler: handler,
		mux:     http.NewServeMux(),
		version: version,
		maxBody: opts.MaxBodyBytes,
		origins: opts.AllowedOrigins,
	}

	s.registerRoutes()

	// Apply middleware
	root := s.corsMiddleware(s.mux)
	root = s.loggingMiddleware(root)
	s.root = s.recoveryMiddleware(root)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /calculate", s.handleCalculate)
	s.mux.HandleFunc("POST /calculate/batch", s.handleBatch)
	s.mux.HandleFunc("GET /regions", s.handleRegions)
	s.mux.HandleFunc("GET /regions/{code}", s.handleRegion)

	// Collaborator endpoints
	s.mux.HandleFunc("GET /locate", s.handleLocate)
	s.mux.HandleFunc("GET /prices/{code}", s.handlePrice)
	s.mux.HandleFunc("GET /labels/{code}", s.handleLabels)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleCalculate handles POST /calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.handler.calculate(r.Context(), &req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleBatch handles POST /calculate/batch
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Trips) == 0 {
		s.writeError(w, ErrorBody{Code: "INVALID_REQUEST", Message: "trips must not be empty"}, http.StatusBadRequest)
		return
	}

	resp, err := s.handler.calculateBatch(r.Context(), &req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleRegions handles GET /regions
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	cat := s.handler.catalog
	s.writeJSON(w, map[string]interface{}{
		"default": cat.DefaultCode(),
		"regions": cat.Profiles(),
	}, http.StatusOK)
}

// handleRegion handles GET /regions/{code}. Unknown codes are a 404
// unless fallback=true asks for the default profile.
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if r.URL.Query().Get("fallback") == "true" {
		s.writeJSON(w, s.handler.catalog.Lookup(code), http.StatusOK)
		return
	}
	p, ok := s.handler.catalog.Get(code)
	if !ok {
		s.writeDomainError(w, apperrors.NotFound("region", code))
		return
	}
	s.writeJSON(w, p, http.StatusOK)
}

// handleLocate handles GET /locate?lat=..&lon=..
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var coords *types.Coordinates
	q := r.URL.Query()
	if q.Has("lat") || q.Has("lon") {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
		if errLat != nil || errLon != nil {
			s.writeError(w, ErrorBody{Code: "INVALID_REQUEST", Message: "lat and lon must both be numbers"}, http.StatusBadRequest)
			return
		}
		coords = &types.Coordinates{Latitude: lat, Longitude: lon}
	}
	s.writeJSON(w, s.handler.locate(r.Context(), coords), http.StatusOK)
}

// handlePrice handles GET /prices/{code}
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	if s.handler.prices == nil {
		s.writeError(w, ErrorBody{Code: "PRICING_DISABLED", Message: "no price source configured"}, http.StatusServiceUnavailable)
		return
	}
	quote, err := s.handler.prices.FetchPrice(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, quote, http.StatusOK)
}

// handleLabels handles GET /labels/{code}?fuel_type=..
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	p := s.handler.catalog.Lookup(r.PathValue("code"))
	fuel := types.FuelType(r.URL.Query().Get("fuel_type"))
	s.writeJSON(w, types.LabelsFor(p, fuel), http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"regions": s.handler.catalog.Len(),
		"stats":   s.stats.Snapshot(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "mileage",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, ErrorBody{Code: "INVALID_JSON", Message: err.Error()}, http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.handler.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, body ErrorBody, status int) {
	s.writeJSON(w, ErrorResponse{Error: body}, status)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsType(err, apperrors.TypeValidation):
		status = http.StatusBadRequest
	case apperrors.IsType(err, apperrors.TypeNotFound):
		status = http.StatusNotFound
	case apperrors.IsType(err, apperrors.TypeNetwork), apperrors.IsType(err, apperrors.TypePricing):
		status = http.StatusBadGateway
	default:
		s.handler.logger.Error("request failed", zap.Error(err))
	}
	s.writeError(w, errorBody(err), status)
}

func errorBody(err error) ErrorBody {
	body := ErrorBody{Code: string(apperrors.TypeInternal), Message: err.Error()}
	if fields := engine.ValidationErrors(err); len(fields) > 0 {
		body.Code = string(apperrors.TypeValidation)
		body.Message = "invalid trip input"
		for _, f := range fields {
			body.Fields = append(body.Fields, FieldError{Field: f.Field, Reason: f.Message})
		}
		return body
	}
	if ae, ok := apperrors.As(err); ok {
		body.Code = string(ae.Type)
	}
	return body
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.root.ServeHTTP(w, r)
}
