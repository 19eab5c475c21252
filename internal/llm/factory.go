package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and (when auditLog is non-nil) request auditing middleware.
func NewProvider(ctx context.Context, cfg Config, auditLog AuditLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → audit → base
	wrapped := WithAudit(base, cfg.Provider, auditLog)
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a Provider from STUDYCOACH_* env vars, falling
// back to the standard provider key vars when no explicit config is set.
func NewProviderFromEnv(ctx context.Context, auditLog AuditLog) (Provider, error) {
	return newProviderWithFallback(ctx, ConfigFromEnv(), auditLog)
}

// NewProviderFromConfig builds a Provider seeded from the config file's
// provider and model keys. STUDYCOACH_* env vars override the file, and
// the standard provider key vars remain the final fallback.
func NewProviderFromConfig(ctx context.Context, provider, model string, auditLog AuditLog) (Provider, error) {
	return newProviderWithFallback(ctx, ConfigFromFile(provider, model), auditLog)
}

func newProviderWithFallback(ctx context.Context, cfg Config, auditLog AuditLog) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, auditLog)
}
