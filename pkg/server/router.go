// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/serializer"
)

const (
	routeCollect     = "/v1/collect"
	routeCollectLast = "/v1/collect/last"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("POST "+routeCollect, s.withMiddleware(s.handleCollect))
	mux.HandleFunc("GET "+routeCollectLast, s.withMiddleware(s.handleCollectLast))
	for pattern, h := range s.handlers {
		mux.HandleFunc(pattern, s.withMiddleware(h))
	}

	mux.HandleFunc("/", s.handleDefault)

	return mux
}

func (s *Server) routes() []string {
	routes := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST " + routeCollect,
		"GET " + routeCollectLast,
	}
	for pattern := range s.handlers {
		routes = append(routes, pattern)
	}
	sort.Strings(routes[5:])
	return routes
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound, "route not found", false,
			map[string]any{"path": r.URL.Path})
		return
	}

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleCollect handles POST /v1/collect: runs one discovery cycle, or joins
// the one in flight, and returns its report.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	if s.trigger == nil {
		WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"on-demand collection is not enabled", false, nil)
		return
	}

	if s.leader != nil && !s.leader.IsLeader() {
		WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"this replica does not hold the collection lease", true,
			map[string]any{"identity": s.leader.Identity()})
		return
	}

	report, err := s.trigger.Trigger(r.Context())
	if err != nil {
		WriteErrorFromErr(w, r, err, "collection failed", nil)
		return
	}

	s.logger.Info("on-demand collection completed",
		"requestID", RequestID(r.Context()),
		"runID", report.RunID,
		"assets", report.TotalAssets(),
		"failed", report.Failed())

	serializer.RespondJSON(w, http.StatusOK, report)
}

// handleCollectLast handles GET /v1/collect/last.
func (s *Server) handleCollectLast(w http.ResponseWriter, r *http.Request) {
	if s.trigger == nil {
		WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"on-demand collection is not enabled", false, nil)
		return
	}

	report := s.trigger.LastReport()
	if report == nil {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound, "no collection has completed yet", true, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, report)
}
