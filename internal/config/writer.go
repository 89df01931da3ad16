package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout of .taskvoice.yaml. Secrets are left out.
type fileConfig struct {
	Project struct {
		RootDir string `yaml:"rootDir"`
	} `yaml:"project"`
	Data struct {
		Backend string `yaml:"backend"`
		File    string `yaml:"file"`
		Format  string `yaml:"format"`
	} `yaml:"data"`
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	} `yaml:"server"`
	LLM struct {
		Provider  string `yaml:"provider"`
		ModelName string `yaml:"modelName,omitempty"`
		BaseURL   string `yaml:"baseURL,omitempty"`
		MaxTokens int    `yaml:"maxTokens,omitempty"`
	} `yaml:"llm"`
	Agent struct {
		MaxSteps int `yaml:"maxSteps"`
	} `yaml:"agent"`
}

// Marshal renders cfg as YAML without the API key.
func Marshal(cfg *types.AppConfig) ([]byte, error) {
	var fc fileConfig
	fc.Project.RootDir = cfg.Project.RootDir
	fc.Data.Backend = cfg.Data.Backend
	fc.Data.File = cfg.Data.File
	fc.Data.Format = cfg.Data.Format
	fc.Server.Addr = cfg.Server.Addr
	fc.Server.AllowedOrigins = cfg.Server.AllowedOrigins
	fc.LLM.Provider = cfg.LLM.Provider
	fc.LLM.ModelName = cfg.LLM.ModelName
	fc.LLM.BaseURL = cfg.LLM.BaseURL
	fc.LLM.MaxTokens = cfg.LLM.MaxTokens
	fc.Agent.MaxSteps = cfg.Agent.MaxSteps
	return yaml.Marshal(fc)
}

// Defaults returns the configuration used when nothing is set.
func Defaults() (*types.AppConfig, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes a default project config to
// <rootDir>/.taskvoice/.taskvoice.yaml. It refuses to overwrite an
// existing file unless force is set, and returns the path written.
func WriteDefault(rootDir string, force bool) (string, error) {
	cfg, err := Defaults()
	if err != nil {
		return "", err
	}
	cfg.Project.RootDir = DefaultRootDir

	dir := filepath.Join(rootDir, ProjectDirName)
	path := filepath.Join(dir, ConfigName+".yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file already exists: %s", path)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	content := append([]byte("# taskvoice configuration\n"), data...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
