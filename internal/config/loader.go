package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads and merges configuration from global and project sources.
// Precedence, lowest to highest: defaults, ~/.planner/config.yaml,
// ./.planner/config.yaml, PLANNER_ADDR / PLANNER_DB environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err == nil {
		loadFile(filepath.Join(home, ".planner", "config.yaml"), cfg)
	}

	cwd, err := os.Getwd()
	if err == nil {
		loadFile(filepath.Join(cwd, ".planner", "config.yaml"), cfg)
	}

	if addr := os.Getenv("PLANNER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath := os.Getenv("PLANNER_DB"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".planner", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".planner", "config.yaml")
}
