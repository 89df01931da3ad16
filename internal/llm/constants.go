package llm

// Provider constants
const (
	// DefaultProvider is the default LLM provider
	DefaultProvider = ProviderOpenAI

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI Provider = "openai"

	// ProviderOllama represents the Ollama provider
	ProviderOllama Provider = "ollama"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic Provider = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultMaxTokens bounds a single assistant reply. Replies are meant to be one sentence.
const DefaultMaxTokens = 512

var defaultModels = map[Provider]string{
	ProviderOpenAI:    "gpt-5-mini",
	ProviderOllama:    "llama3.2",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-2.0-flash",
}

// apiKeyEnv names the environment variable consulted when no key is configured.
var apiKeyEnv = map[Provider]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// DefaultModelForProvider returns the default chat model for provider, or
// "" for an unknown provider.
func DefaultModelForProvider(provider string) string {
	return defaultModels[Provider(provider)]
}

// APIKeyEnvVar returns the environment variable holding the provider's API key.
func APIKeyEnvVar(provider Provider) string {
	return apiKeyEnv[provider]
}
