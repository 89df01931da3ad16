// Package llm creates the chat model behind the assistant using CloudWeGo Eino.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/josephgoksu/taskvoice/types"
	"google.golang.org/genai"
)

// Provider identifies the LLM provider to use.
type Provider string

// Config holds configuration for creating an LLM client.
type Config struct {
	Provider  Provider
	Model     string
	APIKey    string // Required for OpenAI, Anthropic and Gemini
	BaseURL   string // Optional for OpenAI-compatible endpoints; Ollama defaults to localhost
	MaxTokens int
}

// ConfigFromApp resolves an llm Config from application settings, filling
// in the default provider, default model and the provider's API key
// environment variable.
func ConfigFromApp(c types.LLMConfig) (Config, error) {
	name := strings.TrimSpace(c.Provider)
	if name == "" {
		name = string(DefaultProvider)
	}
	provider, err := ValidateProvider(name)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Provider:  provider,
		Model:     c.ModelName,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		MaxTokens: c.MaxTokens,
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModelForProvider(string(provider))
	}
	if cfg.APIKey == "" {
		if env := APIKeyEnvVar(provider); env != "" {
			cfg.APIKey = os.Getenv(env)
		}
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return cfg, nil
}

// NewChatModel creates a ChatModel instance based on the provider configuration.
// It returns an Eino BaseChatModel that can be used for Generate() or Stream() calls.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		})

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
		})

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		maxTokens := cfg.MaxTokens
		if maxTokens <= 0 {
			maxTokens = DefaultMaxTokens
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: maxTokens,
		})

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  cfg.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, ollama, anthropic, gemini)", cfg.Provider)
	}
}

// NewToolCallingModel creates a chat model that supports tool binding.
func NewToolCallingModel(ctx context.Context, cfg Config) (model.ToolCallingChatModel, error) {
	m, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tcm, ok := m.(model.ToolCallingChatModel)
	if !ok {
		return nil, fmt.Errorf("%s model %q does not support tool calling", cfg.Provider, cfg.Model)
	}
	return tcm, nil
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}
