package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/virhant/planner/internal/config"
	"github.com/virhant/planner/internal/core"
	"github.com/virhant/planner/internal/web"
)

var (
	serveAddr   string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planner HTTP API",
	Long: `Start the planner HTTP API server.

Examples:
  planner-cli serve
  planner-cli serve --addr :9000 --db ./planner.db`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "server address (overrides config)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite database path (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveDBPath != "" {
		cfg.Database.Path = serveDBPath
	}

	engine, err := core.NewEngine(core.Config{
		DBPath:      cfg.Database.Path,
		AllowReopen: cfg.Transitions.AllowReopen,
	})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	log.Printf("Starting planner API at %s (db: %s)\n", serverURL(cfg.Server.Addr), cfg.Database.Path)
	server := web.NewServer(engine, cfg.Server.CORSOrigins)
	return server.Run(cfg.Server.Addr)
}

// serverURL renders a listen address as a browsable URL. A bare port gets a
// localhost host; an addr that already names a host is kept as-is.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
