// Package app provides application initialization and lifecycle
// management for the match results dashboard. It wires configuration,
// logging, observability, the dataset store, and the HTTP surface
// together at startup.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Load the matches dataset (a load failure is fatal)
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals to ensure active
// requests complete, websocket connections close cleanly, and telemetry
// providers flush before exit.
package app
