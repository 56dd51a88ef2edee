package ai

import (
	"context"
	"fmt"

	"github.com/johnquangdev/meetly/pkg/config"
)

// Analyzer sends a prompt to a language model and returns the raw completion text
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewAnalyzer builds the analyzer selected by AI_PROVIDER
func NewAnalyzer(ctx context.Context, cfg *config.AIConfig) (Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ai config is nil")
	}
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiClient(ctx, cfg)
	case "groq":
		return NewGroqClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
