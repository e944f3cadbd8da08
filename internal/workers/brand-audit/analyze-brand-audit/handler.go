// internal/workers/brand-audit/analyze-brand-audit/handler.go
package analyzebrandaudit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"brand-audit/internal/analysis"
	"brand-audit/internal/common/camunda"
	"brand-audit/internal/common/config"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/common/metrics"
	"brand-audit/internal/common/observability"
	"brand-audit/internal/common/validation"
)

const (
	TaskType   = "brand-audit.analyze"
	ConfigName = "analyze-brand-audit"

	errorReportTimeout = 10 * time.Second
)

// Handler runs the configured analyzer on the job's audit record. Invalid
// records and remote failures are thrown as BPMN errors; they are never
// retried.
type Handler struct {
	config  *Config
	logger  logger.Logger
	service *analysis.Service
	obs     *observability.Observability
	errors  *apperrors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig     *config.Config
	Service       *analysis.Service
	Observability *observability.Observability
	CustomConfig  *Config
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", ConfigName, err)
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("%s requires an analysis service", ConfigName)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"worker": TaskType})

	return &Handler{
		config:  workerConfig,
		logger:  log,
		service: opts.Service,
		obs:     opts.Observability,
		errors:  apperrors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Analyzing brand audit", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"backend":            h.service.Backend(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output.ToVariables()); err != nil {
		h.logger.WithError(err).Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "completed")
	h.logger.Info("Brand audit analyzed", map[string]interface{}{
		"jobKey":   job.GetKey(),
		"score":    output.Result.Score,
		"phase":    output.Result.Phase,
		"services": serviceLabels(output.Result.RecommendedServices),
	})
}

// parseInput checks the document shape before decoding so a malformed
// status or tag is reported field by field.
func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, apperrors.NewInputParsingError(err)
	}

	record, ok := variables["auditRecord"]
	if !ok || record == nil {
		return nil, apperrors.NewInputParsingError(errors.New("auditRecord variable is required"))
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, apperrors.NewInputParsingError(err)
	}

	shape, err := validation.ValidateAuditDocument(raw)
	if err != nil {
		return nil, apperrors.NewInputParsingError(err)
	}
	if !shape.Valid {
		return nil, apperrors.NewAuditValidationError("audit document is malformed", shape.Errors)
	}

	input := &Input{}
	if err := json.Unmarshal(raw, &input.Record); err != nil {
		return nil, apperrors.NewInputParsingError(err)
	}
	return input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.service.Analyze(ctx, &input.Record)
	if err != nil {
		return nil, err
	}
	return &Output{Result: result, Backend: h.service.Backend()}, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
	h.obs.RecordJobProcessed(ctx, "failed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "failed")

	// The job context may already be past its deadline.
	reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errorReportTimeout)
	defer cancel()
	// Rejections are logged by the error handler.
	_ = h.errors.HandleJobError(reportCtx, client, job, err)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func extractErrorCode(err error) string {
	if stdErr, ok := apperrors.AsStandard(err); ok {
		return string(stdErr.Code)
	}
	return string(apperrors.ErrCodeInternal)
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers[ConfigName]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = config.GetDuration(workerCfg.Timeout)
			}
		}
	}
	return cfg
}
