// internal/remote/openai.go
package remote

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"brand-audit/internal/common/config"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/models"
)

const maxTokens = 2048

// OpenAIAnalyzer asks an OpenAI chat model for the diagnosis.
type OpenAIAnalyzer struct {
	caller
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIAnalyzer(cfg config.ModelAPIConfig, log logger.Logger) (*OpenAIAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIAnalyzer{
		caller:      newCaller(config.BackendOpenAI, config.GetDuration(cfg.Timeout), log),
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (o *OpenAIAnalyzer) Name() string {
	return config.BackendOpenAI
}

func (o *OpenAIAnalyzer) Analyze(ctx context.Context, record *models.AuditRecord) (*models.AnalysisResult, error) {
	return o.analyze(ctx, record, o.generate)
}

func (o *OpenAIAnalyzer) generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
