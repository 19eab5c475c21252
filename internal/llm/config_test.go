package llm

import (
	"context"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STUDYCOACH_LLM_PROVIDER",
		"STUDYCOACH_OPENAI_API_KEY", "STUDYCOACH_ANTHROPIC_API_KEY", "STUDYCOACH_GEMINI_API_KEY",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearProviderEnv(t)

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("default provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default openai model = %q", cfg.OpenAI.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("default retry attempts = %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("STUDYCOACH_LLM_PROVIDER", "anthropic")
	t.Setenv("STUDYCOACH_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("STUDYCOACH_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-test" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("anthropic config = %+v", cfg.Anthropic)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestConfigFromFile_SeedsProviderAndModel(t *testing.T) {
	clearProviderEnv(t)

	cfg := ConfigFromFile("anthropic", "claude-sonnet")
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("anthropic model = %q", cfg.Anthropic.Model)
	}
	// The other providers keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai model = %q", cfg.OpenAI.Model)
	}
}

func TestConfigFromFile_EmptyKeepsDefaults(t *testing.T) {
	clearProviderEnv(t)

	cfg := ConfigFromFile("", "")
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai model = %q", cfg.OpenAI.Model)
	}
}

func TestConfigFromFile_EnvOverridesFile(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("STUDYCOACH_LLM_PROVIDER", "gemini")
	t.Setenv("STUDYCOACH_GEMINI_MODEL", "gemini-pro")

	cfg := ConfigFromFile("openai", "gpt-4o")
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, env should win over file", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-pro" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
}

func TestConfig_ValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("config without API key accepted")
	}
}

func TestConfig_ValidateUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "skynet"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider accepted")
	}
}

func TestConfig_ValidateMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider rejected: %v", err)
	}
}

func TestNewProviderFromConfig_FileSelectsMock(t *testing.T) {
	clearProviderEnv(t)

	p, err := NewProviderFromConfig(context.Background(), "mock", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model id = %q", p.ModelID())
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)

	if _, ok := DiscoverConfig(); ok {
		t.Error("discovered a provider with no keys set")
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Errorf("gemini discovery failed: ok=%v cfg=%+v", ok, cfg)
	}

	// OpenAI takes priority when multiple keys are present.
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" {
		t.Errorf("openai priority failed: ok=%v provider=%q", ok, cfg.Provider)
	}
}
