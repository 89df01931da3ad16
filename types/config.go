/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
	Agent   AgentConfig   `mapstructure:"agent"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	File    string `mapstructure:"file" validate:"required"`
	Format  string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// ServerConfig holds the HTTP action endpoint settings
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required,hostname_port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins" validate:"omitempty,dive,url"`
}

// LLMConfig holds configuration for the chat model behind the assistant
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"omitempty,oneof=openai ollama anthropic gemini"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey"`
	BaseURL   string `mapstructure:"baseURL" validate:"omitempty,url"`
	MaxTokens int    `mapstructure:"maxTokens" validate:"omitempty,min=1"`
}

// AgentConfig tunes the tool-calling assistant
type AgentConfig struct {
	MaxSteps int `mapstructure:"maxSteps" validate:"min=1,max=50"`
}
