package api

import "net/http"

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Handle("/health", s.health.HTTPHandler()).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metricsHandler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/compartments", s.listCompartments).Methods(http.MethodGet)

	resources := api.PathPrefix("/resources").Subrouter()
	resources.HandleFunc("", s.getAllResources).Methods(http.MethodGet)
	resources.HandleFunc("/{category}", s.listResources).Methods(http.MethodGet)

	api.HandleFunc("/metrics/{resource_id}", s.getResourceMetrics).Methods(http.MethodGet)

	cacheRoutes := api.PathPrefix("/cache").Subrouter()
	cacheRoutes.HandleFunc("/stats", s.cacheStats).Methods(http.MethodGet)
	cacheRoutes.HandleFunc("/{compartment_id}", s.invalidateCache).Methods(http.MethodDelete)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = NewResponseWriter(w).WriteNotFound("route " + r.URL.Path)
	})
}
