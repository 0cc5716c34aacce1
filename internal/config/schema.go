package config

// Config is the full engine configuration.
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// DatabaseConfig locates the shared SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// RateLimitConfig sets the per-actor request budgets on mutating endpoints.
type RateLimitConfig struct {
	AwardPerMinute int `yaml:"award_per_minute" mapstructure:"award_per_minute"`
	SpendPerMinute int `yaml:"spend_per_minute" mapstructure:"spend_per_minute"`
}

// DefaultConfig returns the defaults applied before any file is merged.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Database: DatabaseConfig{
			Path: "~/.verdict/verdict.db",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		RateLimit: RateLimitConfig{
			AwardPerMinute: 30,
			SpendPerMinute: 10,
		},
	}
}
