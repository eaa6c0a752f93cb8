package conf

import (
	"path/filepath"
	"testing"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EXPORT_WORK_DIR", "")
	t.Setenv("RUNS_DB_PATH", "")

	cfg := LoadFromEnv()
	if cfg.Server.Port != 5000 {
		t.Errorf("Expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Server.WorkDir == "" {
		t.Error("Expected a default work directory")
	}
	if filepath.Base(cfg.Runs.DBPath) != "runs.db" {
		t.Errorf("Unexpected default db path %q", cfg.Runs.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("EXPORT_WORK_DIR", "/tmp/forge-test")
	t.Setenv("RUNS_DB_PATH", "/tmp/forge-test/runs.db")

	cfg := LoadFromEnv()
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.WorkDir != "/tmp/forge-test" {
		t.Errorf("Expected overridden work dir, got %q", cfg.Server.WorkDir)
	}
	if cfg.Runs.DBPath != "/tmp/forge-test/runs.db" {
		t.Errorf("Expected overridden db path, got %q", cfg.Runs.DBPath)
	}
}

func TestLoadFromEnv_BadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if cfg := LoadFromEnv(); cfg.Server.Port != 5000 {
		t.Errorf("Unparseable port should fall back to 5000, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero port", Config{Server: ServerConfig{Port: 0, WorkDir: "/tmp"}, Runs: RunsConfig{DBPath: "/tmp/runs.db"}}},
		{"port too high", Config{Server: ServerConfig{Port: 70000, WorkDir: "/tmp"}, Runs: RunsConfig{DBPath: "/tmp/runs.db"}}},
		{"missing work dir", Config{Server: ServerConfig{Port: 5000}, Runs: RunsConfig{DBPath: "/tmp/runs.db"}}},
		{"missing db path", Config{Server: ServerConfig{Port: 5000, WorkDir: "/tmp"}}},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
