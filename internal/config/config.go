// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	setDefaults(filepath.Dir(configPath))

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SALON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// First run: persist the defaults so they can be edited by hand
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values relative to the config directory
func setDefaults(dataDir string) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.assets_dir", filepath.Join(dataDir, "assets"))
	v.SetDefault("server.shutdown_timeout", "10s")

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", filepath.Join(dataDir, "salon.db"))

	// Storage defaults (5 MiB per key, same order as a browser quota)
	v.SetDefault("storage.quota_bytes", 5*1024*1024)
	v.SetDefault("storage.seed_on_start", true)

	// Image normalizer defaults
	v.SetDefault("images.max_width", 800)
	v.SetDefault("images.max_height", 800)
	v.SetDefault("images.quality", 60)
	v.SetDefault("images.format", "image/webp")
	v.SetDefault("images.max_upload_bytes", 20*1024*1024)
	v.SetDefault("images.max_source_pixels", 40_000_000)

	// Admin gate defaults
	v.SetDefault("admin.password_hash", DefaultPasswordHash)
	v.SetDefault("auth.jwt_secret", "CHANGE_ME_IN_PRODUCTION_USE_ENV_VAR")
	v.SetDefault("auth.session_hours", 8)
	v.SetDefault("admin.allowed_ips", []string{})
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("ratelimit.attempts", 5)
	v.SetDefault("ratelimit.window", "1m")

	// Backup defaults
	v.SetDefault("backups.path", filepath.Join(dataDir, "backups"))
	v.SetDefault("backups.interval", "24h")
	v.SetDefault("backups.retention", 10)
	v.SetDefault("backups.enable_auto_backup", true)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir, "salon.log"))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.console", true)
}

// DefaultPasswordHash is the SHA-256 digest the admin gate ships with
const DefaultPasswordHash = "fc5669b52ce4e283ad1d5d182de88ff9faec6672bace84ac2ce4c083f54fe2bc"

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetInt64 returns a config value as int64
func GetInt64(key string) int64 {
	if v == nil {
		return 0
	}
	return v.GetInt64(key)
}

// GetStringSlice returns a config value as a list of strings
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}
