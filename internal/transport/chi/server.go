// Package chi exposes the resource API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
	"github.com/gem5-vision/resources-api/internal/domain/search/request"
	batchuc "github.com/gem5-vision/resources-api/internal/usecase/batch"
	filtersuc "github.com/gem5-vision/resources-api/internal/usecase/filters"
	healthuc "github.com/gem5-vision/resources-api/internal/usecase/health"
	resourceuc "github.com/gem5-vision/resources-api/internal/usecase/resource"
	searchuc "github.com/gem5-vision/resources-api/internal/usecase/search"
	workloaduc "github.com/gem5-vision/resources-api/internal/usecase/workload"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server carries the use-case services behind the HTTP surface.
type Server struct {
	resources     *resourceuc.Service
	batch         *batchuc.Service
	search        *searchuc.Service
	filters       *filtersuc.Service
	workloads     *workloaduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	resources *resourceuc.Service,
	batch *batchuc.Service,
	search *searchuc.Service,
	filters *filtersuc.Service,
	workloads *workloaduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		resources: resources,
		batch:     batch,
		search:    search,
		filters:   filters,
		workloads: workloads,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		missingResourcesHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest),
	}
	return s
}

// Routes mounts every operation on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/resources/find-resource-by-id", s.ResourceByID)
	r.Get("/resources/find-resources-in-batch", s.ResourcesInBatch)
	r.Get("/resources/search", s.SearchResources)
	r.Get("/resources/filters", s.FilterOptions)
	r.Get("/resources/get-dependent-workloads", s.DependentWorkloads)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ResourceByID handles GET /resources/find-resource-by-id.
func (s *Server) ResourceByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	version := r.URL.Query().Get("resource_version")

	docs, err := s.resources.Resolve(r.Context(), id, version)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// ResourcesInBatch handles GET /resources/find-resources-in-batch.
func (s *Server) ResourcesInBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("id") {
		writeError(w, http.StatusBadRequest, "At least one valid 'id' parameter is required")
		return
	}
	if !q.Has("resource_version") {
		writeError(w, http.StatusBadRequest,
			"Each 'id' parameter must have a corresponding 'resource_version' parameter "+
				"(use 'None' to fetch all versions)")
		return
	}

	ids := splitCSV(q.Get("id"))
	versions := splitCSV(q.Get("resource_version"))

	results, err := s.batch.ResolveBatch(r.Context(), ids, versions)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// searchResponse is the search success shape.
type searchResponse struct {
	Documents  []domres.Resource `json:"documents"`
	TotalCount int               `json:"totalCount"`
}

// SearchResources handles GET /resources/search.
func (s *Server) SearchResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, pageSize := request.DefaultPage, request.DefaultPageSize
	var err error
	if raw := q.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
	}
	if raw := q.Get("page-size"); raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
	}

	req, err := request.New(q.Get("contains-str"), q.Get("must-include"), q.Get("sort"), page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	docs := result.Documents()
	if docs == nil {
		docs = []domres.Resource{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Documents: docs, TotalCount: result.TotalCount()})
}

// FilterOptions handles GET /resources/filters.
func (s *Server) FilterOptions(w http.ResponseWriter, r *http.Request) {
	values, err := s.filters.Options(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// DependentWorkloads handles GET /resources/get-dependent-workloads.
func (s *Server) DependentWorkloads(w http.ResponseWriter, r *http.Request) {
	refs, err := s.workloads.Dependents(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// sentinelHandler returns an errorHandler matching a single sentinel error.
// Caller-fault kinds expose the error text; it never carries store internals.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

// missingResourcesHandler reports the ids a batch could not resolve.
func missingResourcesHandler(w http.ResponseWriter, err error) bool {
	var missing *domain.MissingResourcesError
	if !errors.As(err, &missing) {
		return false
	}
	writeError(w, http.StatusNotFound, missing.Error())
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			out = append(out, raw[start:i])
			start = i + 1
		}
	}
	return out
}
