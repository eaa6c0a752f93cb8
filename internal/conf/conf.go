package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Runs configuration
	Runs RunsConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port    int
	WorkDir string // scratch space for per-run export trees and archives
}

// RunsConfig contains run-history configuration
type RunsConfig struct {
	DBPath string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	port := 5000
	if val := os.Getenv("PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			port = parsed
		}
	}

	workDir := os.Getenv("EXPORT_WORK_DIR")
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "slack-export-forge")
	}

	runsDBPath := os.Getenv("RUNS_DB_PATH")
	if runsDBPath == "" {
		homeDir, _ := os.UserHomeDir()
		runsDBPath = filepath.Join(homeDir, ".slack-export-forge", "runs.db")
	}

	return &Config{
		Server: ServerConfig{Port: port, WorkDir: workDir},
		Runs:   RunsConfig{DBPath: runsDBPath},
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.WorkDir == "" {
		return fmt.Errorf("work directory is required")
	}
	if c.Runs.DBPath == "" {
		return fmt.Errorf("runs db path is required")
	}
	return nil
}
