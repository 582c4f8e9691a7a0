/*
Package config provides validation helpers for linkedin-assistant configuration.

Validation runs before every save and when the CLI builds the application, so an
unknown backend mode or storage driver is reported before anything is opened.
*/
package config

import (
	"fmt"
	"net/url"
)

// Validate checks that every enumerated field holds a known value and that
// the selected variants have what they need.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	switch cfg.Backend.Mode {
	case BackendMock:
		if cfg.Backend.MockDelayMillis < 0 {
			return fmt.Errorf("backend: mockDelayMillis must not be negative")
		}
	case BackendHTTP:
		if err := validateURL(cfg.Backend.BaseURL); err != nil {
			return fmt.Errorf("backend: %w", err)
		}
	default:
		return fmt.Errorf("backend: unknown mode '%s' (want mock or http)", cfg.Backend.Mode)
	}

	if err := ValidateStorage(cfg.Storage); err != nil {
		return err
	}

	switch cfg.Generator.Provider {
	case "", ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("generator: unknown provider '%s' (want openai or gemini)", cfg.Generator.Provider)
	}

	if cfg.Learning.Epsilon < 0 || cfg.Learning.Epsilon > 1 {
		return fmt.Errorf("learning: epsilon must be between 0 and 1")
	}

	switch cfg.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging: unknown format '%s'", cfg.Logging.Format)
	}

	return nil
}

// ValidateStorage checks the storage driver and its connection settings.
func ValidateStorage(s StorageConfig) error {
	switch s.Driver {
	case StorageFile, StorageSQLite:
		return nil
	case StorageRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("storage: redis driver requires redisURL")
		}
		return nil
	case StoragePostgres:
		if s.PostgresDSN == "" {
			return fmt.Errorf("storage: postgres driver requires postgresDSN")
		}
		return nil
	default:
		return fmt.Errorf("storage: unknown driver '%s' (want file, sqlite, redis or postgres)", s.Driver)
	}
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("http mode requires baseURL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid baseURL '%s': %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid baseURL '%s': scheme must be http or https", raw)
	}
	return nil
}
