// Package cache provides the two-tier key/value store behind the gotms
// client: a transient tier that lives only for the process, and a persistent
// tier mirrored to a backing file across runs.
package cache

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Store holds two independent key/value tables and manages their lifecycle
// against a single backend. Values are stored as-is (aliased, not copied);
// there is no expiry, invalidation is manual via the flush operations.
//
// The persistent table and its backend are reconciled only at two points:
// load time (backend to memory) and save time (memory to backend). The
// design assumes a single live Store per backing path; the backing file is
// not locked.
type Store struct {
	mu         sync.RWMutex
	transient  map[string]any
	persistent map[string]any
	backend    Backend
	log        *zap.Logger
}

// Option is a functional option for configuring the Store.
type Option func(*Store)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithBackend sets the persistence backend, overriding the file backend
// derived from the Open path.
func WithBackend(b Backend) Option {
	return func(s *Store) {
		s.backend = b
	}
}

// Open creates a Store backed by the file at path (DefaultFilename if empty)
// and eagerly loads the persistent table. A missing backing file is created
// empty; an unreadable one is a fatal error naming the path and working
// directory. A corrupt file degrades to an empty table with a logged
// warning.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil {
		if path == "" {
			path = DefaultFilename
		}
		s.backend = NewFileBackend(path)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the persistent table from the backend, replacing the in-memory
// table. The transient table is reset regardless of the load outcome.
func (s *Store) Load() error {
	table, err := s.backend.Load()
	if err != nil {
		var corrupt *CorruptError
		if errors.As(err, &corrupt) {
			s.log.Warn("persistent cache unreadable, starting empty",
				zap.String("path", corrupt.Path), zap.Error(corrupt.Err))
			table = make(map[string]any)
		} else {
			wd, _ := os.Getwd()
			return fmt.Errorf("cache: loading %s (working directory %s): %w",
				s.backend.Location(), wd, err)
		}
	}
	if table == nil {
		table = make(map[string]any)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistent = table
	s.transient = make(map[string]any)
	return nil
}

// Save writes the persistent table to the backend. The snapshot is
// normalized and depth-bounded so repeated saves of unchanged data produce
// byte-identical output.
func (s *Store) Save() error {
	s.mu.RLock()
	snap, err := snapshotTable(s.persistent)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("cache: snapshotting table: %w", err)
	}
	if err := s.backend.Save(snap); err != nil {
		return fmt.Errorf("cache: saving %s: %w", s.backend.Location(), err)
	}
	return nil
}

// Close saves the persistent table best-effort. Failures are logged, never
// returned: shutdown must not be blocked by a failed save.
func (s *Store) Close() error {
	if err := s.Save(); err != nil {
		s.log.Warn("cache save on close failed",
			zap.String("path", s.backend.Location()), zap.Error(err))
	}
	return nil
}

// TransientGet retrieves a value from the transient tier. The second return
// distinguishes a cached empty value from an absent key.
func (s *Store) TransientGet(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.transient[key]
	return v, ok
}

// TransientSet stores a value in the transient tier.
func (s *Store) TransientSet(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transient[key] = value
}

// TransientFlush clears the transient tier. No file interaction.
func (s *Store) TransientFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transient = make(map[string]any)
}

// PersistentGet retrieves a value from the persistent tier.
func (s *Store) PersistentGet(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.persistent[key]
	return v, ok
}

// PersistentSet stores a value in the persistent tier. The value reaches the
// backend at the next Save or Close.
func (s *Store) PersistentSet(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistent[key] = value
}

// PersistentFlush clears the persistent tier in memory and removes the
// backing data immediately; the flush is destructive, not deferred to the
// next save.
func (s *Store) PersistentFlush() error {
	s.mu.Lock()
	s.persistent = make(map[string]any)
	s.mu.Unlock()
	if err := s.backend.Clear(); err != nil {
		return fmt.Errorf("cache: clearing %s: %w", s.backend.Location(), err)
	}
	return nil
}

// FlushAll clears both tiers.
func (s *Store) FlushAll() error {
	s.TransientFlush()
	return s.PersistentFlush()
}

// Len returns the number of entries in each tier.
func (s *Store) Len() (transient, persistent int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transient), len(s.persistent)
}

// Location returns the backing location of the persistent tier.
func (s *Store) Location() string {
	return s.backend.Location()
}
