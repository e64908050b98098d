package transcriber

import (
	"os"
	"path/filepath"
)

// Store is the idempotency contract for cached artifacts: every cacheable
// step asks Has/Load/Store instead of re-implementing file-presence checks
// inline.
type Store interface {
	Has(key string) bool
	Load(key string) (string, error)
	Store(key, value string) error
	// Path returns where the artifact for key lives, for steps (chunk
	// audio export) that write through external tools.
	Path(key string) string
}

type dirStore struct {
	dir string
}

// newDirStore returns a Store keeping each artifact as one file under dir.
func newDirStore(dir string) Store {
	return &dirStore{dir: dir}
}

func (s *dirStore) Has(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

func (s *dirStore) Load(key string) (string, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *dirStore) Store(key, value string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.Path(key), []byte(value), 0644)
}

func (s *dirStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}
