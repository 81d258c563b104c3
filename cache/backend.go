package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultFilename is the backing file used when Open is given an empty path.
const DefaultFilename = ".gotms_cache.json"

// maxPersistDepth bounds the nesting depth of the persisted snapshot. The
// snapshot keeps shallow references only; structure nested deeper than this
// is pruned, not serialized.
const maxPersistDepth = 6

// Backend persists the whole table as one snapshot. Load and Save are the
// only reconciliation points; no streaming or partial writes occur between
// them.
type Backend interface {
	// Load reads the persisted table. A missing snapshot yields an empty
	// table; an undecodable one yields a *CorruptError.
	Load() (map[string]any, error)

	// Save overwrites the persisted table with a deterministic serialized
	// form of the snapshot.
	Save(table map[string]any) error

	// Clear removes the persisted snapshot immediately.
	Clear() error

	// Location names the storage location for error and log messages.
	Location() string
}

// CorruptError reports a persisted snapshot that exists but cannot be
// decoded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt cache data at %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// FileBackend stores the table as stable-ordered, indented JSON in a single
// UTF-8 text file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend at the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the backing file. A missing file is created empty, which also
// establishes write permission up front; any other read failure is returned
// as-is for the caller to treat as fatal.
func (b *FileBackend) Load() (map[string]any, error) {
	data, err := os.ReadFile(b.path) // #nosec G304 - cache path is caller-configured
	if errors.Is(err, fs.ErrNotExist) {
		if werr := os.WriteFile(b.path, []byte("{}\n"), 0o644); werr != nil {
			return nil, fmt.Errorf("creating backing file: %w", werr)
		}
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}

	var table map[string]any
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, &CorruptError{Path: b.path, Err: err}
	}
	if table == nil {
		table = make(map[string]any)
	}
	return table, nil
}

// Save overwrites the backing file. encoding/json sorts map keys at every
// level, so unchanged tables serialize byte-identically.
func (b *FileBackend) Save(table map[string]any) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(b.path, data, 0o644)
}

// Clear deletes the backing file. Idempotent: a missing file is not an
// error.
func (b *FileBackend) Clear() error {
	err := os.Remove(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Location returns the backing file path.
func (b *FileBackend) Location() string {
	return b.path
}

// snapshotTable normalizes the live table into plain JSON shapes and bounds
// its nesting depth. Normalizing through the codec makes the snapshot
// independent of the concrete Go types callers cached.
func snapshotTable(table map[string]any) (map[string]any, error) {
	data, err := json.Marshal(table)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(generic))
	for k, v := range generic {
		out[k] = boundDepth(v, maxPersistDepth)
	}
	return out, nil
}

// boundDepth prunes maps and slices nested deeper than limit.
func boundDepth(v any, limit int) any {
	switch vv := v.(type) {
	case map[string]any:
		if limit <= 0 {
			return nil
		}
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = boundDepth(e, limit-1)
		}
		return out
	case []any:
		if limit <= 0 {
			return nil
		}
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = boundDepth(e, limit-1)
		}
		return out
	default:
		return v
	}
}

// Verify FileBackend implements Backend
var _ Backend = (*FileBackend)(nil)
