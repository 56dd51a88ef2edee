package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meetly/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for LLM analysis
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	retry   RetryPolicy
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.AIConfig) *GroqClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := strings.TrimRight(cfg.GroqBaseURL, "/")
	if base == "" {
		base = "https://api.groq.com"
	}
	model := cfg.GroqModel
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	return &GroqClient{
		apiKey:  cfg.GroqAPIKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		retry:   DefaultRetryPolicy,
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string            `json:"model,omitempty"`
	Messages       []ChatMessage     `json:"messages,omitempty"`
	Temperature    float64           `json:"temperature,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ChatMessage is a single chat turn
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Name returns the provider name
func (g *GroqClient) Name() string { return "groq" }

// Analyze sends the prompt to Groq and returns the assistant content
func (g *GroqClient) Analyze(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:          g.model,
		Messages:       []ChatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.3,
		MaxTokens:      8000,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	return withRetry(ctx, g.retry, func() (string, error) {
		return g.complete(ctx, b)
	})
}

func (g *GroqClient) complete(ctx context.Context, body []byte) (string, error) {
	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{Provider: "groq", StatusCode: resp.StatusCode, Body: readErrorBody(raw)}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
