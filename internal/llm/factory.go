package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/nanoclass/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewImageGenerator creates the configured ImageGenerator wrapped with
// event logging. Image requests are never retried.
func NewImageGenerator(ctx context.Context, cfg Config, eventRepo store.EventRepo) (ImageGenerator, error) {
	var base ImageGenerator
	var err error

	provider := cfg.Image.Provider
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		base, err = NewGeminiImageGenerator(ctx, cfg.Gemini.APIKey, cfg.ImageModel())
	case "openai":
		base, err = NewOpenAIImageGenerator(cfg.OpenAI, cfg.ImageModel())
	case "mock":
		return NewMockImageGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown image provider: %q", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s image generator: %w", provider, err)
	}

	return WithImageLogging(base, provider, eventRepo), nil
}
