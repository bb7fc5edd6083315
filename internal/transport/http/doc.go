// Package http implements the HTTP request handlers for the match
// results dashboard. Handlers stay thin: they parse and validate the
// request, delegate to the service layer, and translate service errors
// into RFC 7807 problem responses through the shared error handler.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Dataset
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Each handler exposes a Routes() method returning a chi.Router so the
// application can mount it under its API prefix.
package http
