// Package memory is a namespaced key/value store for the project runtime.
//
// Values are arbitrary JSON documents stored alongside the time they were
// written. Writes to a single key are atomic but not coordinated: when two
// processes save the same key at once, the last writer wins.
package memory

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/agentx-labs/expertkit/internal/manifest"
)

// ErrNotFound is returned by Load when the key has no value.
var ErrNotFound = stderrors.New("memory: key not found")

// Record is a stored value and its write time.
type Record struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
}

// Decode unmarshals the stored value into v.
func (r *Record) Decode(v any) error {
	return json.Unmarshal(r.Value, v)
}

// Store is a namespaced key/value store.
type Store interface {
	Namespace() string
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string) (*Record, error)
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeKey maps key to a name safe for use as a file name. Characters
// outside [A-Za-z0-9._-] become "_" and leading dots are dropped.
func SanitizeKey(key string) (string, error) {
	clean := strings.TrimLeft(unsafeKeyChars.ReplaceAllString(key, "_"), ".")
	if clean == "" {
		return "", fmt.Errorf("invalid memory key %q", key)
	}
	return clean, nil
}

func encodeRecord(value any, now time.Time) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding memory value: %w", err)
	}
	return json.Marshal(Record{Value: raw, Timestamp: now.UTC().Truncate(time.Second)})
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding memory record: %w", err)
	}
	return &rec, nil
}

// Options selects and configures a backend.
type Options struct {
	Settings   manifest.MemorySettings
	ProjectDir string // base for a relative Settings.FilePath
	RedisURL   string // required for the redis backend
}

// Open returns the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Settings.Backend {
	case "", manifest.BackendFile:
		base := opts.Settings.FilePath
		if base == "" {
			base = manifest.DefaultMemoryPath
		}
		if !filepath.IsAbs(base) {
			base = filepath.Join(opts.ProjectDir, filepath.FromSlash(base))
		}
		return NewFileStore(base, opts.Settings.Namespace)
	case manifest.BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("memory backend redis needs REDIS_URL in the project .env")
		}
		return NewRedisStore(ctx, opts.RedisURL, opts.Settings.Namespace)
	default:
		return nil, fmt.Errorf("unknown memory backend %q", opts.Settings.Backend)
	}
}
