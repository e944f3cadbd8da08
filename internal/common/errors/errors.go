// Package errors provides standardized error handling for the audit service
// and its BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAuditValidationFailed ErrorCode = "AUDIT_VALIDATION_FAILED"
	ErrCodeUnknownChecklistID    ErrorCode = "UNKNOWN_CHECKLIST_ID"
	ErrCodeInputParsingFailed    ErrorCode = "INPUT_PARSING_FAILED"

	ErrCodeRemoteAnalysisFailed  ErrorCode = "REMOTE_ANALYSIS_FAILED"
	ErrCodeRemoteAnalysisTimeout ErrorCode = "REMOTE_ANALYSIS_TIMEOUT"

	ErrCodeDraftNotFound     ErrorCode = "DRAFT_NOT_FOUND"
	ErrCodeDraftStoreFailed  ErrorCode = "DRAFT_STORE_FAILED"
	ErrCodeInvalidIntakeStep ErrorCode = "INVALID_INTAKE_STEP"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e after attaching key to its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewAuditValidationError reports every failed record rule. failures is
// carried in Metadata under "errors".
func NewAuditValidationError(details string, failures interface{}) *StandardError {
	err := &StandardError{
		Code:      ErrCodeAuditValidationFailed,
		Message:   "Audit record is incomplete or invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if failures != nil {
		err.WithMetadata("errors", failures)
	}
	return err
}

// NewUnknownChecklistIDError describes ids the catalog does not know. It is
// used for warnings, never to reject a record.
func NewUnknownChecklistIDError(ids []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownChecklistID,
		Message:   "Audit record contains unknown checklist ids",
		Details:   strings.Join(ids, ", "),
		Retryable: false,
		Metadata:  map[string]interface{}{"ids": ids},
		Timestamp: time.Now().UTC(),
	}
}

func NewInputParsingError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse input",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteAnalysisError wraps a failed call to a hosted model backend.
func NewRemoteAnalysisError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteAnalysisFailed,
		Message:   fmt.Sprintf("Remote analysis with '%s' failed", backend),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"backend": backend},
		Timestamp: time.Now().UTC(),
	}
}

func NewRemoteAnalysisTimeoutError(backend string, timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteAnalysisTimeout,
		Message:   fmt.Sprintf("Remote analysis with '%s' timed out", backend),
		Details:   fmt.Sprintf("no response within %s", timeout),
		Retryable: false,
		Metadata:  map[string]interface{}{"backend": backend},
		Timestamp: time.Now().UTC(),
	}
}

func NewDraftNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftNotFound,
		Message:   "Audit draft not found or expired",
		Details:   fmt.Sprintf("draft %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDraftStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftStoreFailed,
		Message:   fmt.Sprintf("Draft store %s failed", op),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidIntakeStepError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidIntakeStep,
		Message:   "Invalid intake step",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeAuditValidationFailed: "AUDIT_VALIDATION_FAILED",
	ErrCodeUnknownChecklistID:    "UNKNOWN_CHECKLIST_ID",
	ErrCodeInputParsingFailed:    "INPUT_PARSING_FAILED",
	ErrCodeRemoteAnalysisFailed:  "REMOTE_ANALYSIS_FAILED",
	ErrCodeRemoteAnalysisTimeout: "REMOTE_ANALYSIS_FAILED",
	ErrCodeDraftNotFound:         "DRAFT_NOT_FOUND",
	ErrCodeDraftStoreFailed:      "DRAFT_STORE_FAILED",
	ErrCodeInvalidIntakeStep:     "INVALID_INTAKE_STEP",
}

// GetRetryCount returns the recommended retry count. Audit and remote
// analysis failures are never retried automatically.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDraftStoreFailed:
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if failures, ok := stdErr.Metadata["errors"]; ok {
		vars["validationErrors"] = failures
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandard unwraps err to a StandardError, if it holds one.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err wraps a StandardError with code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "REMOTE"):
		return "REMOTE_ANALYSIS"
	case strings.Contains(codeStr, "DRAFT") || strings.Contains(codeStr, "INTAKE"):
		return "INTAKE"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "UNKNOWN") ||
		strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
