package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/query"
	healthuc "github.com/agilesafe/searchd/internal/usecase/health"
	savedfilteruc "github.com/agilesafe/searchd/internal/usecase/savedfilter"
	searchuc "github.com/agilesafe/searchd/internal/usecase/search"
	suggestuc "github.com/agilesafe/searchd/internal/usecase/suggest"
	"github.com/agilesafe/searchd/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server hosts the HTTP API handlers.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Service
	filters       *savedfilteruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	filters *savedfilteruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		suggest: suggest,
		filters: filters,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrActorRequired, http.StatusUnauthorized),
		sentinelHandler(domain.ErrFilterNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrFilterForbidden, http.StatusForbidden),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrBadLimit, http.StatusBadRequest),
		sentinelHandler(domain.ErrUnknownKind, http.StatusBadRequest),
		sentinelHandler(domain.ErrFilterName, http.StatusBadRequest),
		sentinelHandler(domain.ErrFilterDescription, http.StatusBadRequest),
		sentinelHandler(domain.ErrNoEntityTypes, http.StatusBadRequest),
		storeErrorHandler,
	}
	return s
}

// Register mounts the API routes on the given router.
func (s *Server) Register(r gochi.Router) {
	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/search", s.Search)
		r.Get("/suggestions", s.Suggestions)
		r.Route("/filters", func(r gochi.Router) {
			r.Post("/", s.CreateFilter)
			r.Get("/", s.ListFilters)
			r.Put("/{id}", s.UpdateFilter)
			r.Delete("/{id}", s.DeleteFilter)
		})
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	q, err := query.New(req.Text, req.Filters, req.IncludeTypes, req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	env, err := s.search.Search(r.Context(), actor, &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelopeToDTO(&env))
}

// Suggestions handles GET /api/v1/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	suggestions, err := s.suggest.Suggest(r.Context(), actor, r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}

// CreateFilter handles POST /api/v1/filters.
func (s *Server) CreateFilter(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req savedFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sharing, err := sharingFromDTO(req.Sharing)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.filters.Create(r.Context(), actor,
		req.Name, req.Description, req.EntityTypes, req.Criteria, sharing, req.IsPublic)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, savedFilterToDTO(&f))
}

// ListFilters handles GET /api/v1/filters.
func (s *Server) ListFilters(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	visible, err := s.filters.List(r.Context(), actor)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]savedFilterResponse, len(visible))
	for i := range visible {
		items[i] = savedFilterToDTO(&visible[i])
	}

	writeJSON(w, http.StatusOK, savedFilterListResponse{Items: items, Total: len(items)})
}

// UpdateFilter handles PUT /api/v1/filters/{id}.
func (s *Server) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req savedFilterPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := patchFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.filters.Update(r.Context(), actor, gochi.URLParam(r, "id"), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, savedFilterToDTO(&f))
}

// DeleteFilter handles DELETE /api/v1/filters/{id}.
func (s *Server) DeleteFilter(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.filters.Delete(r.Context(), actor, gochi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrActorRequired,
		domain.ErrFilterNotFound,
		domain.ErrFilterForbidden,
		domain.ErrEmptyQuery,
		domain.ErrBadLimit,
		domain.ErrUnknownKind,
		domain.ErrFilterName,
		domain.ErrFilterDescription,
		domain.ErrNoEntityTypes,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		return "search store unavailable"
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// storeErrorHandler maps store command failures to 502: the service is up,
// its backing store is not.
func storeErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		return false
	}
	writeError(w, http.StatusBadGateway, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
