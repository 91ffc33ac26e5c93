// SPDX-License-Identifier: MIT
// Package server exposes routing over HTTP.
//
//	POST /api/route    {"source":[x,y],"destination":[x,y],"condensed":false}
//	                   → GeoJSON Feature with a LineString geometry
//	GET  /api/network  → network statistics
//	GET  /api/version  → API version
//
// Every request builds its own routing.System over the shared layer and
// index, so requests run concurrently. Identical concurrent requests share
// one analysis, and successful answers may be cached.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/blang/semver"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/twinj/uuid"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

// APIVersion is reported by GET /api/version.
var APIVersion = semver.MustParse("1.1.0")

// Listener timeouts. Route requests are small, so slow clients are cut off
// early; WriteTimeout bounds one analysis on a large network.
const (
	ReadHeaderTimeout = 10 * time.Second
	ReadTimeout       = 30 * time.Second
	WriteTimeout      = 2 * time.Minute
	IdleTimeout       = 2 * time.Minute
)

// NewHTTPServer returns an http.Server for h listening on addr.
func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}
}

// New returns the API router wrapped with CORS for origins, request ids and
// response compression.
func New(h *RoutingHandler, origins []string) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	r.HandleFunc("/api/version", getVersion).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return c.Handler(withRequestID(h.logger, gzhttp.GzipHandler(r)))
}

// withRequestID tags the request and the response with an id, keeping one
// the client already sent.
func withRequestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = fmt.Sprintf("%x", uuid.NewV4().Bytes())
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func getVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": APIVersion.String()})
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	_, _ = w.Write([]byte("\n"))
}
