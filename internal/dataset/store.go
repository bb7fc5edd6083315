package dataset

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"crickpulse/pkg/contracts/domain"
)

// Snapshot is the immutable, session-lifetime view of the loaded table.
// The match slice must never be mutated after publication.
type Snapshot struct {
	Matches  []domain.Match
	Path     string
	LoadedAt time.Time
}

// Rows returns the number of loaded match records
func (s *Snapshot) Rows() int {
	if s == nil {
		return 0
	}
	return len(s.Matches)
}

// Store caches the loaded table for the lifetime of the process. The
// file is read at most once; concurrent first reads are collapsed with
// singleflight so HTTP and WebSocket sessions share one load.
type Store struct {
	path   string
	loader *Loader
	logger *slog.Logger

	group    singleflight.Group
	snapshot atomic.Pointer[Snapshot]
}

// NewStore creates a store for the matches file at path
func NewStore(path string, loader *Loader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		loader: loader,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Snapshot returns the cached table, loading it on first use. A load
// failure is not cached, so a missing file keeps surfacing the same
// terminal error instead of an empty table.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.snapshot.Load(); snap != nil {
		return snap, nil
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		if snap := s.snapshot.Load(); snap != nil {
			return snap, nil
		}

		start := time.Now()
		matches, err := s.loader.Load(s.path)
		if err != nil {
			return nil, err
		}

		snap := &Snapshot{
			Matches:  matches,
			Path:     s.path,
			LoadedAt: time.Now(),
		}
		s.snapshot.Store(snap)

		s.logger.InfoContext(ctx, "dataset cached for session",
			slog.String("path", s.path),
			slog.Int("rows", len(matches)),
			slog.String("load_time", time.Since(start).String()))

		return snap, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Snapshot), nil
}

// Loaded reports whether the table has been read into memory
func (s *Store) Loaded() bool {
	return s.snapshot.Load() != nil
}
