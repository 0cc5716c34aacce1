package main

import (
	"os"

	"github.com/chidionyema/verdict-sub009/internal/config"
)

// loadConfig merges config files and environment overrides. Environment
// variables win over files.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("VERDICT_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("VERDICT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	return cfg, nil
}
