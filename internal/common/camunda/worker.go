// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"brand-audit/internal/common/config"
	"brand-audit/internal/common/logger"
)

// JobHandler processes one activated job. It is responsible for completing,
// failing or throwing the job.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Worker is an open job worker for one task type.
type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for taskType. It returns nil when the worker
// is disabled in configuration.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) *Worker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	if !wcfg.Enabled {
		log.Info("Worker disabled", nil)
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(fmt.Sprintf("%s-worker", taskType)).
		Open()

	log.Info("Worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &Worker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

// TaskType returns the job type the worker subscribes to.
func (w *Worker) TaskType() string {
	return w.taskType
}

// Stop closes the job worker and waits for in-flight jobs.
func (w *Worker) Stop() {
	if w == nil || w.worker == nil {
		return
	}
	w.logger.Info("Stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// CompleteJob completes job with variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, variables map[string]interface{}) error {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(variables)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := request.Send(ctx); err != nil {
		return fmt.Errorf("complete job %d: %w", job.GetKey(), err)
	}
	return nil
}
