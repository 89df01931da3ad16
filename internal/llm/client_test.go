package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/josephgoksu/taskvoice/types"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "valid openai", provider: "openai", want: ProviderOpenAI},
		{name: "valid ollama", provider: "ollama", want: ProviderOllama},
		{name: "valid anthropic", provider: "anthropic", want: ProviderAnthropic},
		{name: "valid gemini", provider: "gemini", want: ProviderGemini},
		{name: "invalid provider", provider: "invalid", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
		{name: "case sensitive - OPENAI fails", provider: "OPENAI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProvider(tt.provider)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ValidateProvider(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func TestDefaultModelForProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "gpt-5-mini"},
		{"ollama", "llama3.2"},
		{"anthropic", "claude-3-5-haiku-latest"},
		{"gemini", "gemini-2.0-flash"},
		{"unknown", ""},
	}
	for _, tt := range tests {
		if got := DefaultModelForProvider(tt.provider); got != tt.want {
			t.Errorf("DefaultModelForProvider(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestNewChatModel_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "openai requires API key",
			cfg:     Config{Provider: ProviderOpenAI, Model: "gpt-5-mini"},
			wantErr: "OpenAI API key is required",
		},
		{
			name:    "anthropic requires API key",
			cfg:     Config{Provider: ProviderAnthropic, Model: "claude-3"},
			wantErr: "anthropic API key is required",
		},
		{
			name:    "gemini requires API key",
			cfg:     Config{Provider: ProviderGemini, Model: "gemini-2.0-flash"},
			wantErr: "gemini API key is required",
		},
		{
			name:    "unsupported provider",
			cfg:     Config{Provider: "unknown", Model: "model", APIKey: "key"},
			wantErr: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChatModel(ctx, tt.cfg)
			if err == nil {
				t.Errorf("NewChatModel() expected error containing %q, got nil", tt.wantErr)
				return
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewChatModel() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromApp(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := ConfigFromApp(types.LLMConfig{})
	if err != nil {
		t.Fatalf("ConfigFromApp() unexpected error: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want %q", cfg.Provider, ProviderOpenAI)
	}
	if cfg.Model != "gpt-5-mini" {
		t.Errorf("model = %q, want default", cfg.Model)
	}
	if cfg.APIKey != "sk-from-env" {
		t.Errorf("api key = %q, want value from OPENAI_API_KEY", cfg.APIKey)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("max tokens = %d, want %d", cfg.MaxTokens, DefaultMaxTokens)
	}

	cfg, err = ConfigFromApp(types.LLMConfig{Provider: "ollama", ModelName: "qwen2.5", APIKey: "explicit"})
	if err != nil {
		t.Fatalf("ConfigFromApp() unexpected error: %v", err)
	}
	if cfg.Model != "qwen2.5" || cfg.APIKey != "explicit" {
		t.Errorf("explicit settings not kept: %+v", cfg)
	}

	if _, err := ConfigFromApp(types.LLMConfig{Provider: "bedrock"}); err == nil {
		t.Error("ConfigFromApp() expected error for unsupported provider")
	}
}
