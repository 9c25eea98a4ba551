package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7430 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7430)
	}
	if cfg.Engine.MinSetsPerDay != 3 {
		t.Errorf("Engine.MinSetsPerDay = %d, want 3", cfg.Engine.MinSetsPerDay)
	}
	if cfg.Engine.CoalesceWindowMS != 400 {
		t.Errorf("Engine.CoalesceWindowMS = %d, want 400", cfg.Engine.CoalesceWindowMS)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default to off")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("STRIDE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 7430 {
		t.Errorf("expected default port, got %d", cfg.API.Port)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	t.Setenv("STRIDE_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Engine.MinSetsPerDay = 5
	cfg.Telemetry.Prometheus = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("API.Port = %d, want 9999", loaded.API.Port)
	}
	if loaded.Engine.MinSetsPerDay != 5 {
		t.Errorf("Engine.MinSetsPerDay = %d, want 5", loaded.Engine.MinSetsPerDay)
	}
	if !loaded.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus = false, want true")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STRIDE_HOME", dir)

	partial := "[api]\nport = 8088\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(partial), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 8088 {
		t.Errorf("API.Port = %d, want 8088", cfg.API.Port)
	}
	// Unmentioned sections keep their defaults.
	if cfg.Engine.CoalesceWindowMS != 400 {
		t.Errorf("Engine.CoalesceWindowMS = %d, want 400", cfg.Engine.CoalesceWindowMS)
	}
}

func TestStrideHome_EnvOverride(t *testing.T) {
	t.Setenv("STRIDE_HOME", "/tmp/stride-test-home")
	if got := StrideHome(); got != "/tmp/stride-test-home" {
		t.Errorf("StrideHome() = %q, want env override", got)
	}
}
