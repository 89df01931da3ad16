// Package config loads taskvoice settings from flags, environment, .env
// files and the .taskvoice.yaml config file.
package config

// Config file and environment naming.
const (
	ConfigName = ".taskvoice"
	EnvPrefix  = "TASKVOICE"

	// ProjectDirName holds project-scoped config and crash logs.
	ProjectDirName = ".taskvoice"
)

// Default values for every key.
const (
	DefaultRootDir     = "."
	DefaultBackend     = "file"
	DefaultDataFile    = "tasks.json"
	DefaultDataFormat  = "json"
	DefaultServerAddr  = "127.0.0.1:8089"
	DefaultLLMProvider = "openai"
	DefaultMaxSteps    = 8
)

// defaults maps viper keys to their default values.
var defaults = map[string]any{
	"project.rootDir":       DefaultRootDir,
	"data.backend":          DefaultBackend,
	"data.file":             DefaultDataFile,
	"data.format":           DefaultDataFormat,
	"server.addr":           DefaultServerAddr,
	"server.allowedOrigins": []string{},
	"llm.provider":          DefaultLLMProvider,
	"llm.modelName":         "",
	"llm.apiKey":            "",
	"llm.baseURL":           "",
	"llm.maxTokens":         0,
	"agent.maxSteps":        DefaultMaxSteps,
}
