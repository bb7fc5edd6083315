package config

import "time"

// Application constants for the CrickPulse dashboard
const (
	// Application Info
	AppName    = "CrickPulse"
	AppVendor  = "CrickPulse Analytics"
	EnvPrefix  = "CRICKPULSE"

	// Default file locations (relative to the working directory)
	DefaultMatchesFile = "data/matches.csv"
	DefaultReportsDir  = "reports"
	DefaultWebDir      = "web"
	DefaultLogsDir     = "logs"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// Aggregation defaults
	DefaultTopTeams   = 10  // teams shown in the wins leaderboard
	MaxTopTeams       = 100 // upper bound accepted from the API
	DefaultSeasonSpan = 5   // seasons preselected in the dashboard filter
)
