// Package config loads the YAML configuration of the interactive harness.
// The library itself is configured through constructor options; this file
// format only drives the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iterbot/iterbot"
	"github.com/iterbot/iterbot/tools"
)

// Config holds the harness settings.
type Config struct {
	// Model is the Ollama model name driving the agent.
	Model string `yaml:"model"`

	// OllamaURL is the Ollama base URL.
	OllamaURL string `yaml:"ollama_url"`

	// SearXNGURL is the SearXNG base URL used by the web search tool.
	SearXNGURL string `yaml:"searxng_url"`

	// MaxIterations is the run's iteration ceiling.
	MaxIterations int `yaml:"max_iterations"`

	// MaxCustomPromptSize bounds the custom system prompt, in runes.
	MaxCustomPromptSize int `yaml:"max_custom_prompt_size"`

	// LoopThreshold is how many identical consecutive actions abort a run.
	LoopThreshold int `yaml:"loop_threshold"`

	// Verbose streams Thought/Action/Observation text during runs.
	Verbose bool `yaml:"verbose"`

	// CustomSystemPrompt seeds the agent's additional instructions.
	CustomSystemPrompt string `yaml:"custom_system_prompt"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Model:               iterbot.ModelOllamaLlama32,
		OllamaURL:           "http://localhost:11434",
		SearXNGURL:          tools.DefaultSearXNGURL,
		MaxIterations:       iterbot.DefaultMaxIterations,
		MaxCustomPromptSize: iterbot.DefaultMaxCustomPromptSize,
		LoopThreshold:       iterbot.DefaultLoopThreshold,
		Verbose:             true,
	}
}

// Load reads a YAML config file. ${VAR} references are expanded from the
// environment before parsing. Fields absent from the file keep their
// Default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig returns the first config file present among the standard
// locations: ./config.yaml, ~/.config/iterbot/config.yaml, and
// /etc/iterbot/config.yaml.
func FindConfig() (string, bool) {
	candidates := []string{"config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "iterbot", "config.yaml"))
	}
	candidates = append(candidates, filepath.Join("/etc", "iterbot", "config.yaml"))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (c Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.LoopThreshold < 1 {
		return fmt.Errorf("loop_threshold must be at least 1, got %d", c.LoopThreshold)
	}
	if c.MaxCustomPromptSize < 0 {
		return fmt.Errorf("max_custom_prompt_size must not be negative, got %d", c.MaxCustomPromptSize)
	}
	return nil
}
