package services

import "errors"

// Dashboard service errors
var (
	// Dataset errors
	ErrDatasetNotLoaded = errors.New("matches dataset not loaded")

	// Aggregation errors
	ErrUnknownGrouping = errors.New("unknown grouping key")
	ErrTeamNotFound    = errors.New("team not found")
	ErrSeasonNotFound  = errors.New("season not found")

	// Export errors
	ErrInvalidExportFormat = errors.New("invalid export format")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
