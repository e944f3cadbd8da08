// internal/analysis/service.go

// Package analysis runs the full diagnosis flow shared by the HTTP API, the
// Zeebe workers and the CLI: validate the record, warn about unknown ids, call
// the configured analyzer and record metrics.
package analysis

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"brand-audit/internal/common/config"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/common/metrics"
	"brand-audit/internal/common/observability"
	"brand-audit/internal/common/validation"
	"brand-audit/internal/engine"
	"brand-audit/internal/models"
	"brand-audit/internal/remote"
)

// Analyzer turns an audit record into a diagnosis.
type Analyzer interface {
	Analyze(ctx context.Context, record *models.AuditRecord) (*models.AnalysisResult, error)
	Name() string
}

// NewAnalyzer builds the analyzer selected by cfg.Analysis.Backend.
func NewAnalyzer(ctx context.Context, cfg *config.Config, log logger.Logger) (Analyzer, error) {
	switch cfg.Analysis.Backend {
	case "", config.BackendRules:
		var picker engine.HeadlinePicker = engine.HashPicker{}
		if cfg.Analysis.HeadlineSeed != 0 {
			picker = engine.NewRandomPicker(cfg.Analysis.HeadlineSeed)
		}
		return engine.New(picker), nil
	case config.BackendGemini:
		a, err := remote.NewGeminiAnalyzer(ctx, remoteSettings(cfg, config.BackendGemini), log)
		if err != nil {
			return nil, err
		}
		return a, nil
	case config.BackendOpenAI:
		a, err := remote.NewOpenAIAnalyzer(remoteSettings(cfg, config.BackendOpenAI), log)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown analysis backend %q", cfg.Analysis.Backend)
	}
}

// remoteSettings returns the API settings of backend, falling back to the
// analysis timeout when the API has none.
func remoteSettings(cfg *config.Config, backend string) config.ModelAPIConfig {
	api, _ := cfg.RemoteAPI(backend)
	if api.Timeout <= 0 {
		api.Timeout = cfg.Analysis.Timeout
	}
	return api
}

// Service validates and analyzes audit records.
type Service struct {
	analyzer Analyzer
	obs      *observability.Observability
	logger   logger.Logger
}

func NewService(analyzer Analyzer, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "analysis"}),
	}
}

// Backend names the analyzer in use.
func (s *Service) Backend() string {
	return s.analyzer.Name()
}

// Validate checks record completeness and records a metric per failed rule.
// Warnings are logged and returned with the result.
func (s *Service) Validate(record *models.AuditRecord) *validation.ValidationResult {
	result := validation.ValidateAuditRecord(record)
	for _, e := range result.Errors {
		metrics.ValidationFailures.WithLabelValues(e.Code).Inc()
	}
	for _, w := range result.Warnings {
		s.logger.Warn("Audit record is inconsistent", map[string]interface{}{
			"code":    w.Code,
			"field":   w.Field,
			"message": w.Message,
		})
	}
	return result
}

// Analyze validates record and runs the analyzer. A record that fails
// validation yields AUDIT_VALIDATION_FAILED without calling the analyzer.
// Analyzer errors are returned unchanged.
func (s *Service) Analyze(ctx context.Context, record *models.AuditRecord) (*models.AnalysisResult, error) {
	backend := s.analyzer.Name()
	ctx, span := s.obs.StartSpan(ctx, "audit.analyze", attribute.String("audit.backend", backend))
	defer span.End()

	check := s.Validate(record)
	if !check.Valid {
		span.SetStatus(codes.Error, "validation failed")
		s.logger.Warn("Audit record failed validation", map[string]interface{}{
			"errors": check.GetErrorMessages(),
		})
		return nil, apperrors.NewAuditValidationError("audit record is incomplete", check.Errors)
	}

	s.WarnUnknownIDs(record)

	start := time.Now()
	result, err := s.analyzer.Analyze(ctx, record)
	elapsed := time.Since(start)
	metrics.AnalysisDuration.WithLabelValues(backend).Observe(elapsed.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if backend != engine.BackendName {
			metrics.RemoteFailures.WithLabelValues(backend).Inc()
		}
		s.logger.WithError(err).Error("Audit analysis failed", map[string]interface{}{
			"project": record.ProjectName,
		})
		return nil, err
	}

	span.SetAttributes(
		attribute.String("audit.phase", string(result.Phase)),
		attribute.Int("audit.score", result.Score),
	)
	metrics.AnalysesTotal.WithLabelValues(backend, string(result.Phase)).Inc()
	metrics.AnalysisScore.Observe(float64(result.Score))
	s.obs.RecordAudit(ctx, backend, string(result.Phase))

	s.logger.Info("Audit analyzed", map[string]interface{}{
		"project":     record.ProjectName,
		"score":       result.Score,
		"phase":       result.Phase,
		"services":    result.RecommendedServices,
		"duration_ms": elapsed.Milliseconds(),
	})
	return result, nil
}

// WarnUnknownIDs logs ids the catalog does not know. They never fail a
// request; the engine ignores them.
func (s *Service) WarnUnknownIDs(record *models.AuditRecord) []string {
	unknown := engine.UnknownIDs(record)
	if len(unknown) > 0 {
		warning := apperrors.NewUnknownChecklistIDError(unknown)
		s.logger.Warn("Audit record references unknown ids", map[string]interface{}{
			"code": warning.Code,
			"ids":  unknown,
		})
	}
	return unknown
}
