package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/viper"
)

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// envFiles are loaded in order; earlier files win since godotenv never
// overrides variables that are already set.
var envFiles = []string{".env.local", ".env"}

// Load reads configuration into an AppConfig. cfgFile, when set, names the
// config file explicitly; otherwise .taskvoice.yaml is looked up in
// ./.taskvoice, then $HOME, then the working directory. A missing config
// file is not an error.
func Load(v *viper.Viper, cfgFile string) (*types.AppConfig, error) {
	loadEnvFiles()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		// AutomaticEnv only applies to keys viper knows; binding makes
		// TASKVOICE_DATA_FILE and friends visible to Unmarshal.
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(ProjectDirName)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Config = v.ConfigFileUsed()
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles() {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func normalize(cfg *types.AppConfig) {
	cfg.Data.Backend = strings.ToLower(strings.TrimSpace(cfg.Data.Backend))
	cfg.Data.Format = strings.ToLower(strings.TrimSpace(cfg.Data.Format))
	if cfg.Data.Format == "yml" {
		cfg.Data.Format = "yaml"
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.Project.RootDir == "" {
		cfg.Project.RootDir = DefaultRootDir
	}
}

// Validate checks cfg against its struct tags and reports every failing
// field in one error.
func Validate(cfg *types.AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// ProjectDir returns <rootDir>/.taskvoice.
func ProjectDir(cfg *types.AppConfig) string {
	return filepath.Join(cfg.Project.RootDir, ProjectDirName)
}

// DataPath resolves the task file path. Relative paths are taken from the
// project root.
func DataPath(cfg *types.AppConfig) string {
	p := cfg.Data.File
	if p == "" {
		p = DefaultDataFile
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.Project.RootDir, p)
}
