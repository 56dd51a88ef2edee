package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/johnquangdev/meetly/pkg/config"
)

// GeminiClient calls Models.GenerateContent through the genai SDK
type GeminiClient struct {
	client *genai.Client
	model  string
	retry  RetryPolicy
}

// NewGeminiClient creates a Gemini client using values from the provided config
func NewGeminiClient(ctx context.Context, cfg *config.AIConfig) (*GeminiClient, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	base := strings.TrimRight(cfg.GeminiBaseURL, "/")
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    base,
			APIVersion: "v1beta",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		retry:  DefaultRetryPolicy,
	}, nil
}

// Name returns the provider name
func (g *GeminiClient) Name() string { return "gemini" }

// Analyze sends the prompt to Gemini and returns the text of the first candidate
func (g *GeminiClient) Analyze(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.3),
		ResponseMIMEType: "application/json",
	}

	return withRetry(ctx, g.retry, func() (string, error) {
		return g.generate(ctx, prompt, genCfg)
	})
}

func (g *GeminiClient) generate(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", geminiError(err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("empty response from gemini")
	}
	return resp.Text(), nil
}

// geminiError turns SDK API errors into a StatusError so retry classification
// and the HTTP error mapping see the provider status
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: "gemini", StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &StatusError{Provider: "gemini", StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return err
}
