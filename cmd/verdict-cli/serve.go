package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chidionyema/verdict-sub009/internal/config"
	"github.com/chidionyema/verdict-sub009/internal/economy"
	"github.com/chidionyema/verdict-sub009/internal/ratelimit"
	"github.com/chidionyema/verdict-sub009/internal/storage"
	"github.com/chidionyema/verdict-sub009/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reputation engine API server",
	Long: `Start the HTTP API the marketplace handlers call into.

Examples:
  verdict serve
  verdict serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	engine := economy.NewWithStore(store)
	limiter := ratelimit.NewSQLLimiter(store.DB())

	server := web.NewServer(engine, limiter, web.Limits{
		AwardPerMinute: cfg.RateLimit.AwardPerMinute,
		SpendPerMinute: cfg.RateLimit.SpendPerMinute,
	})

	fmt.Printf("Starting verdict API at http://localhost%s\n", cfg.Server.Addr)
	return server.Run(cfg.Server.Addr)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GlobalConfigPath()
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}
