/*
Package generator writes comment text with a hosted language model.

Two providers are supported: OpenAI-compatible chat completions and Google
Gemini. The http backend uses a Generator when one is configured and
otherwise asks the remote endpoint to generate.
*/
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/growthkit/linkedin-assistant/internal/config"
)

// Default models used when the config leaves the model empty.
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// Prompt is a system instruction plus the user turn.
type Prompt struct {
	System string
	User   string
}

// Generator completes a prompt into text.
type Generator interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// New builds the generator selected by cfg.Provider. An empty provider
// returns a nil Generator and no error.
func New(ctx context.Context, cfg config.GeneratorConfig) (Generator, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case config.ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return NewOpenAI(cfg)
	case config.ProviderGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

// cleanCompletion strips whitespace and the wrapping quotes models like to add.
func cleanCompletion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
