package config

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment override.
const envPrefix = "LINKEDIN_ASSISTANT"

// LoadFrom reads config with enhanced error handling
func LoadFrom(path string) (*Config, error) {
	// Check file existence first
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "Run 'linkedin-assistant config init' to create configuration",
			}
		}
		return nil, fmt.Errorf("failed to access config: %w", err)
	}

	// Check read permissions
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path:    path,
				Op:      "read",
				Fix:     getReadPermissionFix(path),
				Details: getPermissionDetails(path),
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("JSON parse error: %v", err),
			Hint:    "Restore from .bak file if available",
		}
	}

	return decode(v, path)
}

// loadDefaults builds a config from defaults and environment only.
func loadDefaults() (*Config, error) {
	return decode(newViper(), "")
}

func decode(v *viper.Viper, path string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("decode error: %v", err),
			Hint:    "Check field types against 'linkedin-assistant config show'",
		}
	}
	return &cfg, nil
}

// newViper returns a viper instance wired for JSON files, defaults and env overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := NewConfig()

	v.SetDefault("backend.mode", d.Backend.Mode)
	v.SetDefault("backend.baseurl", d.Backend.BaseURL)
	v.SetDefault("backend.mockdelaymillis", d.Backend.MockDelayMillis)
	v.SetDefault("backend.timeoutseconds", d.Backend.TimeoutSeconds)
	v.SetDefault("backend.requestspersecond", d.Backend.RequestsPerSecond)

	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.redisurl", d.Storage.RedisURL)
	v.SetDefault("storage.postgresdsn", d.Storage.PostgresDSN)
	v.SetDefault("storage.keyprefix", d.Storage.KeyPrefix)

	v.SetDefault("generator.provider", d.Generator.Provider)
	v.SetDefault("generator.model", d.Generator.Model)
	v.SetDefault("generator.apikey", d.Generator.APIKey)
	v.SetDefault("generator.baseurl", d.Generator.BaseURL)

	v.SetDefault("server.addr", d.Server.Addr)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("learning.historypath", d.Learning.HistoryPath)
	v.SetDefault("learning.epsilon", d.Learning.Epsilon)
}

// getReadPermissionFix returns platform-specific fix command
func getReadPermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Edit permissions", path)
	default: // unix-like
		return fmt.Sprintf("Run: chmod 600 %s", path)
	}
}

// getPermissionDetails checks file ownership and permissions
func getPermissionDetails(path string) string {
	if runtime.GOOS == "windows" {
		return ""
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("Current permissions: %04o", info.Mode().Perm())
}
