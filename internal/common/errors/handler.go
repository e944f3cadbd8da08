// internal/common/errors/handler.go
package errors

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler reports failed audit jobs to the broker.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError reports err for job. Codes with a retry budget fail the job
// so the broker re-activates it, spending one of the job's retries each time.
// Everything else, and a retryable failure on its last retry, is thrown as a
// BPMN error for the process to route. A rejected report is logged and
// returned.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) error {
	stdErr, ok := AsStandard(err)
	if !ok {
		stdErr = NewInternalError(err)
	}
	bpmnErr := ConvertToBPMNError(stdErr)
	retries := retriesLeft(job, bpmnErr)

	h.logger.Error("Audit job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retriesLeft":      retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})

	var sendErr error
	if retries > 0 {
		sendErr = failJob(ctx, client, job, bpmnErr, retries)
	} else {
		sendErr = throwError(ctx, client, job, bpmnErr)
	}
	if sendErr != nil {
		h.logger.Error("Broker rejected job error report", map[string]interface{}{
			"jobKey":        job.Key,
			"jobType":       job.Type,
			"bpmnErrorCode": bpmnErr.Code,
			"retriesLeft":   retries,
			"error":         sendErr.Error(),
		})
	}
	return sendErr
}

// retriesLeft is the retry count to report on a failed job: one less than the
// job still has, capped by the code's budget.
func retriesLeft(job entities.Job, bpmnErr *BPMNError) int {
	if bpmnErr.Retries <= 0 {
		return 0
	}
	left := int(job.Retries) - 1
	if left > bpmnErr.Retries {
		left = bpmnErr.Retries
	}
	if left < 0 {
		return 0
	}
	return left
}

func failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) error {
	cmd, err := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message).
		VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		return fmt.Errorf("fail job %d: encode variables: %w", job.Key, err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("fail job %d: %w", job.Key, err)
	}
	return nil
}

func throwError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) error {
	cmd, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		return fmt.Errorf("throw %s for job %d: encode variables: %w", bpmnErr.Code, job.Key, err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("throw %s for job %d: %w", bpmnErr.Code, job.Key, err)
	}
	return nil
}
