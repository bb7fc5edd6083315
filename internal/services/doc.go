// Package services implements the business logic layer between the HTTP
// handlers and the dataset store.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Domain-focused methods that encapsulate the dashboard's rules
//
// The DashboardService owns every aggregate computation: it reads the
// session-cached table from the dataset store, applies the caller's
// filter, and delegates to the pure functions in internal/stats. The
// HealthService reports liveness and readiness derived from the state
// of the session cache.
package services
