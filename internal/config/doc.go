// Package config provides centralized configuration management for the
// CrickPulse dashboard. It handles loading configuration from multiple
// sources, validation, and a type-safe API for accessing configuration
// values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml / configs/config.yaml
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CRICKPULSE_* for namespacing:
//
//	CRICKPULSE_SERVER_PORT=8080
//	CRICKPULSE_DATA_MATCHES_FILE=data/matches.csv
//	CRICKPULSE_LOGGING_LEVEL=info
//
// # Column Schema
//
// The exact CSV column names are a deployment convention, not a protocol.
// The Data.Columns section maps every Match Record attribute to a header
// name so a differently-labelled export can be loaded without code
// changes:
//
//	data:
//	  matches_file: data/matches.csv
//	  columns:
//	    season: Season
//	    team1: home_team
//	    team2: away_team
package config
