// Package ai wraps the Gemini API for JSON-producing prompts.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lazyintern/internal/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("ai: empty response")

// ModelsAPI is the subset of genai.Models used here.
type ModelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models  ModelsAPI
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New returns a Gemini client, or nil when no API key is configured.
func New(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Gemini, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		logger.Info("GEMINI_API_KEY not set, AI search disabled")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewGemini(client.Models, cfg.Model, cfg.Timeout, logger), nil
}

func NewGemini(models ModelsAPI, model string, timeout time.Duration, logger *zap.Logger) *Gemini {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Gemini{models: models, model: model, timeout: timeout, logger: logger}
}

// GenerateJSON runs prompt under the system instruction and returns the
// model's JSON answer with any markdown fence removed.
func (g *Gemini) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
		MaxOutputTokens:   1000,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		g.logger.Warn("gemini request failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := cleanJSONBlock(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	g.logger.Debug("gemini answered", zap.String("model", g.model), zap.Duration("took", time.Since(start)))
	return text, nil
}

func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
