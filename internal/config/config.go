// Package config resolves service settings from an optional YAML file and
// the environment. Credentials only ever come from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultBaseID = "appu3EJIBXxGqsmRN"

type Config struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SnapshotTTL    string   `yaml:"snapshot_ttl"`
	ChatProvider   string   `yaml:"chat_provider"`
	ChatModel      string   `yaml:"chat_model"`
	UpstreamURL    string   `yaml:"upstream_url"`

	// Environment only, never read from the file.
	AirtableBaseID string `yaml:"-"`
	AirtablePAT    string `yaml:"-"`
	OpenAIKey      string `yaml:"-"`
	AnthropicKey   string `yaml:"-"`
	RedisURL       string `yaml:"-"`
}

// Load reads the optional config file at path, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:           ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		ChatProvider:   "openai",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.AirtableBaseID = firstEnv("AIRTABLE_BASE_ID")
	if cfg.AirtableBaseID == "" {
		cfg.AirtableBaseID = defaultBaseID
	}
	cfg.AirtablePAT = firstEnv("AIRTABLE_PAT", "AIRTABLE_TOKEN", "AIRTABLE_API_KEY")
	cfg.OpenAIKey = firstEnv("OPENAI_API_KEY", "OPENAI_KEY")
	cfg.AnthropicKey = firstEnv("ANTHROPIC_API_KEY")
	cfg.RedisURL = firstEnv("REDIS_URL")

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
	}
	if provider := os.Getenv("CHAT_PROVIDER"); provider != "" {
		cfg.ChatProvider = provider
	}
	if upstream := os.Getenv("UPSTREAM_URL"); upstream != "" {
		cfg.UpstreamURL = upstream
	}

	return cfg, nil
}

// SnapshotTTLDuration parses the configured TTL, defaulting to 5 minutes.
func (c *Config) SnapshotTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SnapshotTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// firstEnv returns the first non-empty variable of a fallback chain.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
