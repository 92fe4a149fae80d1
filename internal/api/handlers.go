package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/catherinevee/inventorymgr/internal/api/middleware"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

const (
	modeLive = "live"
	modeMock = "mock"
)

func (s *Server) meta(r *http.Request, count int) *APIMeta {
	mode := modeMock
	if s.inventory.IsLive() {
		mode = modeLive
	}
	return &APIMeta{
		Count:     count,
		RequestID: middleware.RequestID(r.Context()),
		Mode:      mode,
	}
}

func (s *Server) fail(w *ResponseWriter, r *http.Request, err error) {
	s.log.WithContext(r.Context()).Warn("Request failed",
		logger.String("path", r.URL.Path),
		logger.String("request_id", middleware.RequestID(r.Context())),
		logger.Error(err),
	)
	_ = w.WriteInventoryError(err)
}

// GET /api/v1/compartments
func (s *Server) listCompartments(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	SetNoCacheHeaders(rw)

	scopes := s.inventory.ListScopes(r.Context())
	_ = rw.WriteSuccess(scopes, s.meta(r, len(scopes)))
}

// GET /api/v1/resources?compartment_id=&types=
func (s *Server) getAllResources(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	SetNoCacheHeaders(rw)

	q := r.URL.Query()
	resp, err := s.inventory.GetAllResources(r.Context(), q.Get("compartment_id"), parseTypes(q["types"]))
	if err != nil {
		s.fail(rw, r, err)
		return
	}
	_ = rw.WriteSuccess(resp, s.meta(r, resp.TotalResources))
}

// GET /api/v1/resources/{category}?compartment_id=
func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	SetNoCacheHeaders(rw)

	category := mux.Vars(r)["category"]
	scopeID := r.URL.Query().Get("compartment_id")

	resources, err := s.inventory.ListResources(r.Context(), category, scopeID)
	if err != nil {
		s.fail(rw, r, err)
		return
	}

	c, _ := models.ParseCategory(category)
	_ = rw.WriteSuccess(CategoryResources{
		CompartmentID: scopeID,
		Category:      c,
		Resources:     resources,
		Count:         len(resources),
	}, s.meta(r, len(resources)))
}

// GET /api/v1/metrics/{resource_id}?resource_type=
func (s *Server) getResourceMetrics(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	SetNoCacheHeaders(rw)

	m, err := s.inventory.GetResourceMetrics(r.Context(), mux.Vars(r)["resource_id"], r.URL.Query().Get("resource_type"))
	if err != nil {
		s.fail(rw, r, err)
		return
	}
	_ = rw.WriteSuccess(m, s.meta(r, 1))
}

// GET /api/v1/cache/stats
func (s *Server) cacheStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	SetNoCacheHeaders(rw)

	if s.cache == nil {
		_ = rw.WriteNotFound("cache")
		return
	}
	_ = rw.WriteSuccess(s.cache.Stats(r.Context()), s.meta(r, 0))
}

// DELETE /api/v1/cache/{compartment_id}
func (s *Server) invalidateCache(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	scopeID := mux.Vars(r)["compartment_id"]
	removed := s.inventory.Invalidate(r.Context(), scopeID)
	_ = rw.WriteSuccess(InvalidateResult{CompartmentID: scopeID, KeysRemoved: removed}, s.meta(r, removed))
}

// parseTypes accepts repeated and comma separated values
func parseTypes(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
