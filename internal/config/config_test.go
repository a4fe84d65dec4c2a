package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	// Verify config file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestGetConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	InitConfig(configPath)

	if value := GetString("server.port"); value != "8080" {
		t.Errorf("Expected default port to be 8080, got %s", value)
	}
	if value := GetInt("images.max_width"); value != 800 {
		t.Errorf("Expected default max width 800, got %d", value)
	}
	if value := GetString("admin.password_hash"); value != DefaultPasswordHash {
		t.Errorf("Expected default password hash, got %s", value)
	}
}

func TestDefaultsFollowConfigDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	InitConfig(configPath)

	want := filepath.Join(tmpDir, "salon.db")
	if got := GetString("database.path"); got != want {
		t.Errorf("Expected database path %s, got %s", want, got)
	}
}

func TestSetConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	InitConfig(configPath)

	err := Set("server.port", "9090")
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value := GetString("server.port")
	if value != "9090" {
		t.Errorf("Expected port to be 9090, got %s", value)
	}
}

func TestAdminDefaults(t *testing.T) {
	InitConfig(filepath.Join(t.TempDir(), "config.yaml"))

	if got := GetStringSlice("admin.allowed_ips"); len(got) != 0 {
		t.Errorf("Expected empty allowlist, got %v", got)
	}
	if got := GetStringSlice("server.trusted_proxies"); len(got) != 0 {
		t.Errorf("Expected no trusted proxies, got %v", got)
	}
	if got := GetInt64("images.max_source_pixels"); got != 40_000_000 {
		t.Errorf("Expected 40M pixel cap, got %d", got)
	}
	if got := GetInt("ratelimit.attempts"); got != 5 {
		t.Errorf("Expected 5 login attempts, got %d", got)
	}
	if got := GetDuration("ratelimit.window").String(); got != "1m0s" {
		t.Errorf("Expected 1m window, got %s", got)
	}
}

func TestEnvOverridesNestedKey(t *testing.T) {
	t.Setenv("SALON_SERVER_PORT", "7070")
	InitConfig(filepath.Join(t.TempDir(), "config.yaml"))

	if got := GetString("server.port"); got != "7070" {
		t.Errorf("Expected env override 7070, got %s", got)
	}
}
