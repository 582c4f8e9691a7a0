/*
Package config handles loading and saving linkedin-assistant configuration.

Configuration is stored in ~/.linkedin-assistant.json. Every key can be overridden
through the environment with the LINKEDIN_ASSISTANT_ prefix, sections joined by an
underscore (e.g. LINKEDIN_ASSISTANT_BACKEND_MODE=http).

Schema:

	{
	  "backend": {
	    "mode": "mock",
	    "baseURL": "https://api.example.com",
	    "mockDelayMillis": 1000,
	    "timeoutSeconds": 30,
	    "requestsPerSecond": 2
	  },
	  "storage": {
	    "driver": "file",
	    "path": "~/.linkedin-assistant/storage.json",
	    "redisURL": "",
	    "postgresDSN": "",
	    "keyPrefix": ""
	  },
	  "generator": {"provider": "", "model": "", "apiKey": "", "baseURL": ""},
	  "server": {"addr": "127.0.0.1:8787"},
	  "logging": {"level": "info", "format": "console"},
	  "learning": {"historyPath": "~/.linkedin-assistant/history.db", "epsilon": 0.1}
	}
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// BackendMock returns canned data after an artificial delay.
	BackendMock = "mock"
	// BackendHTTP talks to a real REST endpoint.
	BackendHTTP = "http"

	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config represents the root configuration structure.
type Config struct {
	// Backend selects and configures the post/comment backend.
	Backend BackendConfig `json:"backend" mapstructure:"backend"`

	// Storage selects the durable key-value medium for user settings.
	Storage StorageConfig `json:"storage" mapstructure:"storage"`

	// Generator configures local text generation for the http backend.
	Generator GeneratorConfig `json:"generator" mapstructure:"generator"`

	// Server configures the local HTTP API used by the browser UI.
	Server ServerConfig `json:"server" mapstructure:"server"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	Learning LearningConfig `json:"learning" mapstructure:"learning"`
}

// BackendConfig configures the backend variant.
type BackendConfig struct {
	// Mode is "mock" or "http".
	Mode string `json:"mode" mapstructure:"mode"`

	// BaseURL is the REST endpoint root for the http backend.
	BaseURL string `json:"baseURL,omitempty" mapstructure:"baseurl"`

	// MockDelayMillis is the artificial latency of every mock call.
	MockDelayMillis int `json:"mockDelayMillis" mapstructure:"mockdelaymillis"`

	// TimeoutSeconds bounds each http backend request.
	TimeoutSeconds int `json:"timeoutSeconds" mapstructure:"timeoutseconds"`

	// RequestsPerSecond is the client-side rate limit of the http backend.
	RequestsPerSecond float64 `json:"requestsPerSecond" mapstructure:"requestspersecond"`
}

// StorageConfig configures the key-value medium.
type StorageConfig struct {
	// Driver is one of "file", "sqlite", "redis", "postgres".
	Driver string `json:"driver" mapstructure:"driver"`

	// Path is the file or database path for the file and sqlite drivers.
	Path string `json:"path,omitempty" mapstructure:"path"`

	RedisURL    string `json:"redisURL,omitempty" mapstructure:"redisurl"`
	PostgresDSN string `json:"postgresDSN,omitempty" mapstructure:"postgresdsn"`

	// KeyPrefix namespaces keys on shared media (redis).
	KeyPrefix string `json:"keyPrefix,omitempty" mapstructure:"keyprefix"`
}

// GeneratorConfig configures the LLM used for comment text.
type GeneratorConfig struct {
	// Provider is "", "openai" or "gemini". Empty delegates generation to the backend.
	Provider string `json:"provider,omitempty" mapstructure:"provider"`
	Model    string `json:"model,omitempty" mapstructure:"model"`
	APIKey   string `json:"apiKey,omitempty" mapstructure:"apikey"`
	BaseURL  string `json:"baseURL,omitempty" mapstructure:"baseurl"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level" mapstructure:"level"`

	// Format is "console" or "json".
	Format string `json:"format" mapstructure:"format"`
}

// LearningConfig configures the activity history database and tone selection.
type LearningConfig struct {
	HistoryPath string `json:"historyPath,omitempty" mapstructure:"historypath"`

	// Epsilon is the share of tone picks that explore instead of exploit.
	Epsilon float64 `json:"epsilon" mapstructure:"epsilon"`
}

// NewConfig creates a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Mode:              BackendMock,
			BaseURL:           "https://api.example.com",
			MockDelayMillis:   1000,
			TimeoutSeconds:    30,
			RequestsPerSecond: 2,
		},
		Storage: StorageConfig{
			Driver: StorageFile,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Learning: LearningConfig{
			Epsilon: 0.1,
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.linkedin-assistant.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".linkedin-assistant.json"), nil
}

// GetDataDir returns ~/.linkedin-assistant, where storage files live by default.
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".linkedin-assistant"), nil
}

// StoragePath resolves the storage path, falling back to the data directory.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Driver == StorageSQLite {
		return filepath.Join(dir, "storage.db"), nil
	}
	return filepath.Join(dir, "storage.json"), nil
}

// HistoryPath resolves the learning history database path.
func (c *Config) HistoryPath() (string, error) {
	if c.Learning.HistoryPath != "" {
		return c.Learning.HistoryPath, nil
	}
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadOrCreate reads the configuration at path, or returns defaults (with env
// overrides applied) when the file does not exist yet. An empty path means the
// default location.
func LoadOrCreate(path string) (*Config, error) {
	if path == "" {
		p, err := GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		return cfg, nil
	}
	if IsNotFound(err) {
		return loadDefaults()
	}
	return nil, err
}
