package preference

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Store is a process-wide key/value store persisted as a JSON object.
type Store struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]json.RawMessage
}

// NewStore loads the store from filePath, or starts empty if the file does
// not exist. Returns an error only on unexpected I/O or decode failures.
func NewStore(filePath string) (*Store, error) {
	s := &Store{filePath: filePath, values: map[string]json.RawMessage{}}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the backing file, replacing the in-memory values.
func (s *Store) Reload() error {
	values := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	case len(data) > 0:
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// String returns the string stored under key, or def when the key is
// missing or holds another type.
func (s *Store) String(key, def string) string {
	var v string
	if !s.get(key, &v) {
		return def
	}
	return v
}

// Bool returns the bool stored under key, or def.
func (s *Store) Bool(key string, def bool) bool {
	var v bool
	if !s.get(key, &v) {
		return def
	}
	return v
}

func (s *Store) get(key string, v any) bool {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Set stores value under key and writes the whole store to disk.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]json.RawMessage, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = raw
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold s.mu.
func (s *Store) writeAtomic(values map[string]json.RawMessage) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}
