package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors describing the load failure taxonomy. All of them are
// terminal at startup: either the whole file loads or the session does
// not start.
var (
	// ErrFileNotFound indicates the matches file is missing or unreadable
	ErrFileNotFound = errors.New("matches file not found")

	// ErrParse indicates a malformed row or cell value
	ErrParse = errors.New("matches file could not be parsed")

	// ErrSchemaMismatch indicates an expected column is absent
	ErrSchemaMismatch = errors.New("matches file schema mismatch")
)

// LoadError wraps a load failure with file position context
type LoadError struct {
	Path string
	Row  int // 1-based data row, 0 when not row-specific
	Err  error
	Msg  string
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: row %d: %s: %v", e.Path, e.Row, e.Msg, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying sentinel error
func (e *LoadError) Unwrap() error {
	return e.Err
}

func notFoundErr(path string, cause error) *LoadError {
	return &LoadError{Path: path, Err: ErrFileNotFound, Msg: cause.Error()}
}

func parseErr(path string, row int, msg string) *LoadError {
	return &LoadError{Path: path, Row: row, Err: ErrParse, Msg: msg}
}

func schemaErr(path, column string) *LoadError {
	return &LoadError{Path: path, Err: ErrSchemaMismatch, Msg: fmt.Sprintf("required column %q is missing", column)}
}
