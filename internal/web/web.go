package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/metrics"
)

const maxBodyBytes = 1 << 20

// ErrUnsupportedMediaType is returned by DecodeJSON for non-JSON bodies
var ErrUnsupportedMediaType = errors.New("Content-Type must be application/json")

// Router wraps a ServeMux with request logging and metrics
type Router struct {
	mux     *http.ServeMux
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewRouter creates a router. m may be nil.
func NewRouter(log *logger.Logger, m *metrics.Metrics) *Router {
	return &Router{mux: http.NewServeMux(), logger: log, metrics: m}
}

// HandleFunc registers next under a method-qualified pattern such as "GET /menus/{name}"
func (rt *Router) HandleFunc(pattern string, next http.HandlerFunc) {
	rt.mux.HandleFunc(pattern, rt.withLogging(pattern, next))
}

// Handle registers h without request logging
func (rt *Router) Handle(pattern string, h http.Handler) {
	rt.mux.Handle(pattern, h)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

// withLogging adds a request id, request logging and metrics
func (rt *Router) withLogging(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(logger.WithRequestID(r.Context(), requestID))

		rt.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		if rt.metrics != nil {
			rt.metrics.ObserveRequest(pattern, rw.statusCode, duration)
		}
		rt.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// DecodeJSON reads a JSON body into v, rejecting unknown fields
func DecodeJSON(r *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}
	return nil
}

// WriteJSON writes v with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, statusCode int, message, requestID string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
