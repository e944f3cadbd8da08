// internal/remote/gemini.go
package remote

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"brand-audit/internal/common/config"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/models"
)

// GeminiAnalyzer asks a Gemini model for the diagnosis.
type GeminiAnalyzer struct {
	caller
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiAnalyzer(ctx context.Context, cfg config.ModelAPIConfig, log logger.Logger) (*GeminiAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiAnalyzer{
		caller:      newCaller(config.BackendGemini, config.GetDuration(cfg.Timeout), log),
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (g *GeminiAnalyzer) Name() string {
	return config.BackendGemini
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, record *models.AuditRecord) (*models.AnalysisResult, error) {
	return g.analyze(ctx, record, g.generate)
}

func (g *GeminiAnalyzer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr(g.temperature),
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
