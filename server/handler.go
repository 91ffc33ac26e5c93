// SPDX-License-Identifier: MIT
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/netroute/layer"
	"github.com/katalvlaran/netroute/network"
	"github.com/katalvlaran/netroute/routing"
)

// maxBodyBytes bounds the size of a route request.
const maxBodyBytes = 64 << 10

// CacheHeader reports "hit" or "miss" when the route cache is enabled.
const CacheHeader = "X-Route-Cache"

// RouteRequest is the body of POST /api/route.
type RouteRequest struct {
	Source      [2]float64 `json:"source"`
	Destination [2]float64 `json:"destination"`

	// Condensed selects the graph mode; omitted means the configured default.
	Condensed *bool `json:"condensed,omitempty"`
}

// RoutingHandler serves routing requests over one network.
type RoutingHandler struct {
	layer     layer.FeatureSource
	index     *network.Index
	opts      []routing.Option
	condensed bool
	logger    *slog.Logger

	flight   singleflight.Group
	cache    *freecache.Cache
	cacheTTL int // seconds
}

// NewRoutingHandler returns a handler routing over src, indexed by idx.
// opts configure the per-request routing.System.
func NewRoutingHandler(src layer.FeatureSource, idx *network.Index, logger *slog.Logger, opts ...routing.Option) *RoutingHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := routing.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &RoutingHandler{layer: src, index: idx, opts: opts, condensed: o.Condensed, logger: logger}
}

// EnableCache keeps successful route responses in an in-memory cache of
// roughly sizeBytes for ttl. A zero ttl never expires entries.
func (h *RoutingHandler) EnableCache(sizeBytes int, ttl time.Duration) {
	h.cache = freecache.NewCache(sizeBytes)
	h.cacheTTL = int(ttl / time.Second)
	h.logger.Info("route cache enabled", "bytes", sizeBytes, "ttl", ttl)
}

// RegisterRoutes wires the routing API onto router.
func (h *RoutingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/route", h.CalculateRoute).Methods("POST")
	router.HandleFunc("/api/network", h.GetNetwork).Methods("GET")
}

// routeError carries an analysis failure through singleflight.
type routeError struct {
	kind routing.ErrorKind
	err  error
}

func (e *routeError) Error() string { return e.err.Error() }

// CalculateRoute snaps both points, routes between them and returns the
// path as a GeoJSON Feature.
func (h *RoutingHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRouteRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), routing.KindConfiguration)
		return
	}
	condensed := h.condensed
	if req.Condensed != nil {
		condensed = *req.Condensed
	}
	key := fmt.Sprintf("%v|%v|%t", req.Source, req.Destination, condensed)

	if h.cache != nil {
		if body, err := h.cache.Get([]byte(key)); err == nil {
			w.Header().Set(CacheHeader, "hit")
			writeBody(w, http.StatusOK, body)
			return
		} else if err != freecache.ErrNotFound {
			h.logger.Warn("route cache read failed", "err", err)
		}
		w.Header().Set(CacheHeader, "miss")
	}

	v, err, shared := h.flight.Do(key, func() (interface{}, error) {
		return h.route(orb.Point(req.Source), orb.Point(req.Destination), condensed)
	})
	if err != nil {
		var re *routeError
		if !errors.As(err, &re) {
			re = &routeError{kind: routing.KindUnexpected, err: err}
		}
		h.logger.Info("route request failed",
			"id", r.Header.Get(RequestIDHeader), "kind", re.kind.String(), "err", re.err)
		writeError(w, statusOf(re.kind), re.Error(), re.kind)
		return
	}
	body := v.([]byte)
	if h.cache != nil && !shared {
		if err := h.cache.Set([]byte(key), body, h.cacheTTL); err != nil {
			h.logger.Warn("route cache write failed", "err", err)
		}
	}
	writeBody(w, http.StatusOK, body)
}

// route runs one analysis and returns the encoded Feature.
func (h *RoutingHandler) route(from, to orb.Point, condensed bool) ([]byte, error) {
	sys, err := routing.NewSystem(h.opts...)
	if err == nil {
		err = sys.SetAnalysisNetwork(h.layer, h.index)
	}
	if err == nil {
		err = sys.SetUserSource(from)
	}
	if err == nil {
		err = sys.SetUserDestination(to)
	}
	var rt *routing.Route
	if err == nil {
		rt, err = sys.PerformShortestPathAnalysis(condensed)
	}
	if err != nil {
		return nil, &routeError{kind: routing.KindOf(err), err: err}
	}

	f := geojson.NewFeature(rt.Path)
	f.Properties["cost"] = rt.Cost
	f.Properties["condensed"] = rt.Condensed
	f.Properties["vertices"] = len(rt.Vertices)

	return json.Marshal(f)
}

// decodeRouteRequest validates the body against the request schema before
// decoding it.
func decodeRouteRequest(r io.Reader) (RouteRequest, error) {
	var req RouteRequest
	raw, err := io.ReadAll(r)
	if err != nil {
		return req, fmt.Errorf("read body: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := routeSchema.Validate(doc); err != nil {
		return req, fmt.Errorf("invalid route request: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("invalid route request: %w", err)
	}

	return req, nil
}

// GetNetwork reports statistics of the coarse network graph.
func (h *RoutingHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	st, err := network.Summarize(r.Context(), h.index)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), routing.KindUnexpected)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// statusOf maps an error kind onto an HTTP status.
func statusOf(k routing.ErrorKind) int {
	switch k {
	case routing.KindConfiguration:
		return http.StatusBadRequest
	case routing.KindNoCandidate:
		return http.StatusNotFound
	case routing.KindUnreachable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string, kind routing.ErrorKind) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind.String()})
}
