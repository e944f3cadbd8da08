// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"brand-audit/internal/common/config"
	"brand-audit/internal/common/logger"
)

// Client wraps the Zeebe gRPC client.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

// ClientConfig holds configuration for the Camunda/Zeebe client.
type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RetryConfig            *RetryConfig
}

// RetryConfig defines how often the initial connection is attempted.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// ConfigFromApp builds a ClientConfig from the application settings.
func ConfigFromApp(cfg config.CamundaConfig) *ClientConfig {
	timeout := config.GetDuration(cfg.RequestTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      timeout,
		RetryConfig:            DefaultRetryConfig,
	}
}

// Connect creates a Zeebe client and checks the broker topology, retrying
// with exponential backoff until the retry budget is spent or ctx ends.
func Connect(ctx context.Context, cfg *ClientConfig, log logger.Logger) (*Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = DefaultRetryConfig
	}

	var lastErr error
	delay := cfg.RetryConfig.BaseDelay
	for attempt := 1; attempt <= cfg.RetryConfig.MaxRetries; attempt++ {
		client, err := dial(ctx, cfg)
		if err == nil {
			return client, nil
		}
		lastErr = err

		if attempt == cfg.RetryConfig.MaxRetries {
			break
		}
		log.Warn("Zeebe connection failed, retrying", map[string]interface{}{
			"attempt":     attempt,
			"maxRetries":  cfg.RetryConfig.MaxRetries,
			"nextRetryIn": delay.String(),
			"error":       err.Error(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("zeebe connection cancelled after %d attempts: %w", attempt, ctx.Err())
		}
		delay *= 2
		if delay > cfg.RetryConfig.MaxDelay {
			delay = cfg.RetryConfig.MaxDelay
		}
	}

	return nil, fmt.Errorf("zeebe connection failed after %d attempts: %w", cfg.RetryConfig.MaxRetries, lastErr)
}

func dial(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, cfg.ConnectionTimeout)
	defer cancel()

	if _, err := zeebeClient.NewTopologyCommand().Send(checkCtx); err != nil {
		_ = zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
	}

	return &Client{client: zeebeClient, config: cfg}, nil
}

// GetClient returns the raw Zeebe client used to open job workers.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck performs a basic health check against the Zeebe broker.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	_, err := c.client.NewTopologyCommand().Send(ctx)
	if err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
