// Package config loads surveyor configuration from file, environment, and
// defaults via viper. Precedence: explicit file > SURVEYOR_* environment
// variables > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LLMConfig holds model endpoint settings.
type LLMConfig struct {
	Endpoint       string  `mapstructure:"endpoint" yaml:"endpoint"`
	Model          string  `mapstructure:"model" yaml:"model"`
	APIKey         string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Temperature    float32 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// AgentConfig holds execution-loop limits.
type AgentConfig struct {
	MaxIterations    int `mapstructure:"max_iterations" yaml:"max_iterations"`
	MaxToolCalls     int `mapstructure:"max_tool_calls" yaml:"max_tool_calls"`
	ExplorationDepth int `mapstructure:"exploration_depth" yaml:"exploration_depth"`
}

// SandboxConfig holds filesystem-policy settings.
type SandboxConfig struct {
	Mode         string   `mapstructure:"mode" yaml:"mode"`
	ExtraIgnores []string `mapstructure:"extra_ignores" yaml:"extra_ignores,omitempty"`
}

// IngestConfig bounds prompt-context ingestion.
type IngestConfig struct {
	MaxFiles      int   `mapstructure:"max_files" yaml:"max_files"`
	MaxTotalBytes int64 `mapstructure:"max_total_bytes" yaml:"max_total_bytes"`
	MaxFileBytes  int64 `mapstructure:"max_file_bytes" yaml:"max_file_bytes"`
}

// Config is the full surveyor configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent"`
	Sandbox SandboxConfig `mapstructure:"sandbox" yaml:"sandbox"`
	Ingest  IngestConfig  `mapstructure:"ingest" yaml:"ingest"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Endpoint:       "http://localhost:11434/v1",
			Model:          "qwen2.5:7b",
			TimeoutSeconds: 120,
			Temperature:    0.2,
			MaxTokens:      4096,
		},
		Agent: AgentConfig{
			MaxIterations:    15,
			MaxToolCalls:     5,
			ExplorationDepth: 3,
		},
		Sandbox: SandboxConfig{
			Mode: "full",
		},
		Ingest: IngestConfig{
			MaxFiles:      200,
			MaxTotalBytes: 5 * 1024 * 1024,
			MaxFileBytes:  512 * 1024,
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("llm.endpoint", def.LLM.Endpoint)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("llm.api_key", def.LLM.APIKey)
	v.SetDefault("llm.timeout_seconds", def.LLM.TimeoutSeconds)
	v.SetDefault("llm.temperature", def.LLM.Temperature)
	v.SetDefault("llm.max_tokens", def.LLM.MaxTokens)
	v.SetDefault("agent.max_iterations", def.Agent.MaxIterations)
	v.SetDefault("agent.max_tool_calls", def.Agent.MaxToolCalls)
	v.SetDefault("agent.exploration_depth", def.Agent.ExplorationDepth)
	v.SetDefault("sandbox.mode", def.Sandbox.Mode)
	v.SetDefault("sandbox.extra_ignores", def.Sandbox.ExtraIgnores)
	v.SetDefault("ingest.max_files", def.Ingest.MaxFiles)
	v.SetDefault("ingest.max_total_bytes", def.Ingest.MaxTotalBytes)
	v.SetDefault("ingest.max_file_bytes", def.Ingest.MaxFileBytes)
}

// Load reads configuration. With a non-empty path that exact file is
// required; otherwise config.yaml is searched in the working directory and
// ~/.surveyor, and a missing file falls back to defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SURVEYOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".surveyor"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns ~/.surveyor/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".surveyor", "config.yaml"), nil
}
