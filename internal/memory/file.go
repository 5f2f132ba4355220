package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	recordExt  = ".json"
	tmpPattern = ".memory-tmp-*"
)

// FileStore keeps one JSON file per key under <base>/<namespace>.
type FileStore struct {
	namespace string
	dir       string
	now       func() time.Time
}

// NewFileStore creates the namespace directory and returns a store over it.
func NewFileStore(base, namespace string) (*FileStore, error) {
	if namespace == "" {
		namespace = "default"
	}
	ns, err := SanitizeKey(namespace)
	if err != nil {
		return nil, fmt.Errorf("invalid namespace: %w", err)
	}
	dir := filepath.Join(base, ns)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}
	return &FileStore{namespace: namespace, dir: dir, now: time.Now}, nil
}

// Namespace returns the store namespace.
func (s *FileStore) Namespace() string { return s.namespace }

// Dir returns the directory holding the records.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) (string, error) {
	name, err := SanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+recordExt), nil
}

// Save writes value under key, replacing any previous value.
func (s *FileStore) Save(_ context.Context, key string, value any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := encodeRecord(value, s.now())
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// Load returns the record for key or ErrNotFound.
func (s *FileStore) Load(_ context.Context, key string) (*Record, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading memory %s: %w", key, err)
	}
	return decodeRecord(data)
}

// Keys lists stored keys in sorted order. Keys are reported in their
// sanitized form.
func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing memory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, recordExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), tmpPattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	success = true
	return nil
}
