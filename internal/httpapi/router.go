// internal/httpapi/router.go

// Package httpapi exposes the audit service over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brand-audit/internal/analysis"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/intake"
)

// defaultMaxBodyBytes bounds request bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// ReadyFunc reports whether a dependency is reachable.
type ReadyFunc func(ctx context.Context) error

// Router serves the audit API.
type Router struct {
	service *analysis.Service
	drafts  *intake.Store
	ready   ReadyFunc
	logger  logger.Logger
	maxBody int64
}

// Option customizes the router.
type Option func(*Router)

// WithMaxBodyBytes limits request bodies to n bytes.
func WithMaxBodyBytes(n int64) Option {
	return func(rt *Router) {
		if n > 0 {
			rt.maxBody = n
		}
	}
}

// NewRouter builds the HTTP handler. Draft routes are mounted only when a
// draft store is given. ready may be nil.
func NewRouter(service *analysis.Service, drafts *intake.Store, ready ReadyFunc, log logger.Logger, opts ...Option) http.Handler {
	rt := &Router{
		service: service,
		drafts:  drafts,
		ready:   ready,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
		maxBody: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(rt)
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(rt.requestLogger)

	mux.Get("/health", rt.handleHealth)
	mux.Get("/ready", rt.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", rt.handleCatalog)
		r.Post("/audits/validate", rt.wrap(rt.handleValidate))
		r.Post("/audits/analyze", rt.wrap(rt.handleAnalyze))

		if drafts != nil {
			r.Post("/drafts", rt.wrap(rt.handleCreateDraft))
			r.Get("/drafts/{id}", rt.wrap(rt.handleGetDraft))
			r.Patch("/drafts/{id}", rt.wrap(rt.handleUpdateDraft))
			r.Post("/drafts/{id}/submit", rt.wrap(rt.handleSubmitDraft))
		}
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap renders a handler error as a StandardError body with a status taken
// from its code.
func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		stdErr, ok := apperrors.AsStandard(err)
		if !ok {
			stdErr = apperrors.NewInternalError(err)
		}
		status := statusFor(stdErr.Code)
		if status >= http.StatusInternalServerError {
			rt.logger.WithError(err).Error("Request failed", map[string]interface{}{
				"path":   req.URL.Path,
				"status": status,
				"code":   stdErr.Code,
			})
		}
		writeJSON(w, status, stdErr)
	}
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInputParsingFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeDraftNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeAuditValidationFailed, apperrors.ErrCodeInvalidIntakeStep:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeRemoteAnalysisFailed, apperrors.ErrCodeRemoteAnalysisTimeout:
		return http.StatusBadGateway
	case apperrors.ErrCodeDraftStoreFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		rt.logger.Debug("HTTP request", map[string]interface{}{
			"method":      req.Method,
			"path":        req.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(req.Context()),
		})
	})
}

func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"backend": rt.service.Backend(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (rt *Router) handleReady(w http.ResponseWriter, req *http.Request) {
	if rt.ready != nil {
		if err := rt.ready(req.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}
