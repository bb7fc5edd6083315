package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/matches.csv", cfg.Data.MatchesFile)
	assert.Equal(t, "reports", cfg.Data.ReportsDir)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "season", cfg.Data.Columns.Season)
	assert.Equal(t, "win_by_wickets", cfg.Data.Columns.WinByWickets)
	require.NoError(t, cfg.validate())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CRICKPULSE_SERVER_PORT", "9090")
	t.Setenv("CRICKPULSE_DATA_MATCHES_FILE", "fixtures/ipl.csv")
	t.Setenv("CRICKPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "fixtures/ipl.csv", cfg.Data.MatchesFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ColumnOverride(t *testing.T) {
	t.Setenv("CRICKPULSE_DATA_COLUMNS_WINNER", "match_winner")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "match_winner", cfg.Data.Columns.Winner)
	// Untouched columns keep their defaults
	assert.Equal(t, "team1", cfg.Data.Columns.Team1)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "read timeout"},
		{"empty matches file", func(c *Config) { c.Data.MatchesFile = "" }, "matches file"},
		{"no origins", func(c *Config) { c.Security.AllowedOrigins = nil }, "allowed origin"},
		{"bad log output", func(c *Config) { c.Logging.Output = "syslog" }, "invalid logging output"},
		{"file output without path", func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }, "file path required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMatchesPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data/matches.csv", cfg.MatchesPath())

	cfg.Data.MatchesFile = "/var/lib/crickpulse/matches.csv"
	assert.Equal(t, "/var/lib/crickpulse/matches.csv", cfg.MatchesPath())
}
