// Package dataset loads the matches CSV into an immutable in-memory
// table and caches it for the lifetime of the process.
//
// Loading follows an all-or-nothing contract: either every row parses
// and validates, or the load fails with one of the taxonomy errors
// (ErrFileNotFound, ErrSchemaMismatch, ErrParse) wrapped in a LoadError
// carrying file and row context. There are no partial tables, retries,
// or file watching; the session cache in Store reads the file at most
// once and serves the same Snapshot to every caller afterwards.
package dataset
