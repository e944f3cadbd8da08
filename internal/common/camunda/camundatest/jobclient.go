// internal/common/camunda/camundatest/jobclient.go

// Package camundatest records job commands in memory so handlers can be
// tested without a broker.
package camundatest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// JobClient implements worker.JobClient. Commands are built by the real
// client builders and sent to an in-memory gateway; only the job commands
// are served.
type JobClient struct {
	pb.GatewayClient

	mu        sync.Mutex
	err       error
	completed []*pb.CompleteJobRequest
	failed    []*pb.FailJobRequest
	thrown    []*pb.ThrowErrorRequest
}

func NewJobClient() *JobClient {
	return &JobClient{}
}

// RejectWith makes every following command fail with err after it is
// recorded.
func (c *JobClient) RejectWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c, noRetry)
}

func (c *JobClient) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed = append(c.completed, in)
	if c.err != nil {
		return nil, c.err
	}
	return &pb.CompleteJobResponse{}, nil
}

func (c *JobClient) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = append(c.failed, in)
	if c.err != nil {
		return nil, c.err
	}
	return &pb.FailJobResponse{}, nil
}

func (c *JobClient) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thrown = append(c.thrown, in)
	if c.err != nil {
		return nil, c.err
	}
	return &pb.ThrowErrorResponse{}, nil
}

func (c *JobClient) Completed() []*pb.CompleteJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.CompleteJobRequest(nil), c.completed...)
}

func (c *JobClient) Failed() []*pb.FailJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), c.failed...)
}

func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), c.thrown...)
}

// Variables decodes the JSON variables document of a recorded command.
func Variables(doc string) (map[string]interface{}, error) {
	vars := map[string]interface{}{}
	if doc == "" {
		return vars, nil
	}
	if err := json.Unmarshal([]byte(doc), &vars); err != nil {
		return nil, err
	}
	return vars, nil
}
