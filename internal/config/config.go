package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	AI struct {
		Provider string `yaml:"provider"` // "openai" or "anthropic"
		APIKey   string `yaml:"apiKey"`
		Model    string `yaml:"model"`
		BaseURL  string `yaml:"baseURL"`
	} `yaml:"ai"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// ProviderConfig is the resolved, usable provider credential set. A nil
// ProviderConfig means "not configured": the service refuses to call out
// instead of constructing a client with placeholder credentials that would
// fail later with a confusing error.
type ProviderConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Load reads the yaml config file and applies environment overrides.
// The file is optional; environment variables alone are enough to run.
func Load(path string) (*Config, error) {
	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := apiKeyFromEnv(cfg.AI.Provider); v != "" {
		cfg.AI.APIKey = v
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	return &cfg, nil
}

func apiKeyFromEnv(provider string) string {
	if v := os.Getenv("AI_API_KEY"); v != "" {
		return v
	}
	switch strings.ToLower(provider) {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// ResolveProvider returns the provider credentials, or nil when the key is
// absent or an obvious placeholder.
func (c *Config) ResolveProvider() *ProviderConfig {
	if IsPlaceholder(c.AI.APIKey) {
		return nil
	}
	return &ProviderConfig{
		Provider: strings.ToLower(c.AI.Provider),
		APIKey:   c.AI.APIKey,
		Model:    c.AI.Model,
		BaseURL:  c.AI.BaseURL,
	}
}

// IsPlaceholder reports whether a credential value is empty or one of the
// template values people leave behind in sample configs.
func IsPlaceholder(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case k == "":
		return true
	case k == "changeme" || k == "placeholder" || k == "none" || k == "todo":
		return true
	case strings.HasPrefix(k, "your-") || strings.HasPrefix(k, "your_"):
		return true
	case strings.Contains(k, "xxxx"):
		return true
	}
	return false
}
