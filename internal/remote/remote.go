// internal/remote/remote.go

// Package remote implements analyzers that delegate the diagnosis to a hosted
// language model. Each call issues exactly one request, bounded by a timeout,
// and is never retried. Any transport error or malformed answer is returned
// to the caller as REMOTE_ANALYSIS_FAILED.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/common/validation"
	"brand-audit/internal/models"
)

const defaultTimeout = 60 * time.Second

// generateFunc sends one prompt and returns the raw model text.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// caller holds what every remote backend shares.
type caller struct {
	backend string
	timeout time.Duration
	logger  logger.Logger
}

func newCaller(backend string, timeout time.Duration, log logger.Logger) caller {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return caller{
		backend: backend,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"backend": backend}),
	}
}

func (c caller) analyze(ctx context.Context, record *models.AuditRecord, generate generateFunc) (*models.AnalysisResult, error) {
	if record == nil {
		return nil, apperrors.NewRemoteAnalysisError(c.backend, errors.New("audit record is nil"))
	}

	prompt, err := BuildPrompt(record)
	if err != nil {
		return nil, apperrors.NewRemoteAnalysisError(c.backend, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := generate(callCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("Remote analysis timed out", map[string]interface{}{
				"timeout": c.timeout.String(),
			})
			return nil, apperrors.NewRemoteAnalysisTimeoutError(c.backend, c.timeout)
		}
		c.logger.Error("Remote analysis request failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.NewRemoteAnalysisError(c.backend, err)
	}

	result, err := DecodeResult([]byte(text))
	if err != nil {
		c.logger.Error("Remote analysis returned an invalid result", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.NewRemoteAnalysisError(c.backend, err)
	}

	c.logger.Debug("Remote analysis completed", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
		"phase":       result.Phase,
		"score":       result.Score,
	})
	return result, nil
}

// DecodeResult parses a model answer into an AnalysisResult. The answer must
// satisfy the result schema exactly; nothing is repaired or defaulted.
func DecodeResult(raw []byte) (*models.AnalysisResult, error) {
	body := stripCodeFence(strings.TrimSpace(string(raw)))
	if body == "" {
		return nil, errors.New("empty response")
	}

	check, err := validation.ValidateJSON(validation.AnalysisResultSchema(), []byte(body))
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !check.Valid {
		return nil, fmt.Errorf("response does not match the result contract: %s",
			strings.Join(check.GetErrorMessages(), "; "))
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// stripCodeFence removes a surrounding ```json fence, which some models add
// even when asked for bare JSON.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
