package config

// Config represents the full planner configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// HTTP server settings
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Storage settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Status lifecycle settings
	Transitions TransitionsConfig `yaml:"transitions" mapstructure:"transitions"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr        string   `yaml:"addr" mapstructure:"addr"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// DatabaseConfig configures the SQLite store
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// TransitionsConfig configures the status transition guard
type TransitionsConfig struct {
	// AllowReopen lets completed and failed tasks move back into active
	// statuses. Off by default: terminal means terminal.
	AllowReopen bool `yaml:"allow_reopen" mapstructure:"allow_reopen"`
}
