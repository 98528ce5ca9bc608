package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model. It captures credentials,
// the monitored list, pipeline mode, storage paths, and the server address.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	List        ListConfig        `yaml:"list"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
}

type CredentialsConfig struct {
	// X/Twitter API bearer token. If empty, read from env X_BEARER_TOKEN
	BearerToken string `yaml:"bearerToken"`
}

type ListConfig struct {
	// Numeric list identifier, e.g. "1885044904994234805"
	ID string `yaml:"id"`
	// Platform base URL used to derive author profile URLs
	BaseURL string `yaml:"baseUrl"`
}

type PipelineConfig struct {
	// Output schema: "rich" (flat posts) or "simplified" (grouped by author)
	Mode string `yaml:"mode"`
}

type StorageConfig struct {
	DBPath    string `yaml:"dbPath"`
	BronzeDir string `yaml:"bronzeDir"`
	GoldDir   string `yaml:"goldDir"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "none"
	Model    string `yaml:"model"`
	// If empty, read from env OPENAI_API_KEY
	APIKey string `yaml:"apiKey"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Credentials: CredentialsConfig{BearerToken: ""},
		List:        ListConfig{ID: "", BaseURL: "https://x.com"},
		Pipeline:    PipelineConfig{Mode: "rich"},
		Storage: StorageConfig{
			DBPath:    "./listlens.db",
			BronzeDir: "data/bronze",
			GoldDir:   "data/gold",
		},
		Server: ServerConfig{Addr: ":8080"},
		LLM:    LLMConfig{Provider: "none", Model: "gpt-4o-mini", APIKey: ""},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Credentials.BearerToken == "" {
		c.Credentials.BearerToken = os.Getenv("X_BEARER_TOKEN")
	}
	if c.LLM.APIKey == "" && c.LLM.Provider == "openai" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
