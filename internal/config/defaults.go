package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Server: ServerConfig{
			Addr: ":8080",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
			},
		},
		Database: DatabaseConfig{
			Path: "~/.planner/planner.db",
		},
		Transitions: TransitionsConfig{
			AllowReopen: false,
		},
	}
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	content := `# Planner Global Configuration
version: "1"

# HTTP server
server:
  addr: ":8080"
  # Origins allowed to call the API from a browser
  cors_origins:
    - http://localhost:3000
    - http://localhost:5173

# SQLite storage
database:
  path: ~/.planner/planner.db

# Status lifecycle
transitions:
  # Completed and failed are terminal. Set true to allow reopening.
  allow_reopen: false
`
	return os.WriteFile(path, []byte(content), 0644)
}
