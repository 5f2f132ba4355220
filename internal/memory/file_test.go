package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/expertkit/internal/manifest"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), "pinescript")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC) }
	return s
}

func TestFileStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "prefs", map[string]any{"theme": "dark", "n": 3}))

	rec, err := s.Load(ctx, "prefs")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), rec.Timestamp)

	var got map[string]any
	require.NoError(t, rec.Decode(&got))
	assert.Equal(t, "dark", got["theme"])
	assert.EqualValues(t, 3, got["n"])
}

func TestFileStore_OnDiskFormat(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), "greeting", "hello"))

	data, err := os.ReadFile(filepath.Join(s.Dir(), "greeting.json"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "hello", doc["value"])
	assert.Equal(t, "2026-01-02T03:04:05Z", doc["timestamp"])
}

func TestFileStore_Overwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "k", 1))
	require.NoError(t, s.Save(ctx, "k", 2))

	rec, err := s.Load(ctx, "k")
	require.NoError(t, err)
	var n int
	require.NoError(t, rec.Decode(&n))
	assert.Equal(t, 2, n)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Keys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, k := range []string{"b", "a", "s1_conversation"} {
		require.NoError(t, s.Save(ctx, k, k))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), ".memory-tmp-123"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), nil, 0644))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "s1_conversation"}, keys)
}

func TestFileStore_KeySanitizing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "../escape/key", "x"))
	_, err := os.Stat(filepath.Join(s.Dir(), "_escape_key.json"))
	assert.NoError(t, err)

	rec, err := s.Load(ctx, "../escape/key")
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(rec.Value))

	assert.Error(t, s.Save(ctx, "", "x"))
	assert.Error(t, s.Save(ctx, "...", "x"))
}

func TestFileStore_ConcurrentSavesLeaveValidRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, "shared", i))
		}(i)
	}
	wg.Wait()

	rec, err := s.Load(ctx, "shared")
	require.NoError(t, err)
	var n int
	require.NoError(t, rec.Decode(&n))
	assert.True(t, n >= 0 && n < 8)
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"simple":         "simple",
		"with space":     "with_space",
		"a/b\\c":         "a_b_c",
		".hidden":        "hidden",
		"s-1_context.v2": "s-1_context.v2",
	}
	for in, want := range tests {
		got, err := SanitizeKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestConversationHelpers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := RetrieveContext(ctx, s, "session1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, s.Save(ctx, ContextKey("session1"), map[string]string{"topic": "indicators"}))
	rec, err = RetrieveContext(ctx, s, "session1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.JSONEq(t, `{"topic":"indicators"}`, string(rec.Value))

	require.NoError(t, StoreConversation(ctx, s, "session1", "q", "r"))
	rec, err = s.Load(ctx, "session1_conversation")
	require.NoError(t, err)
	var ex Exchange
	require.NoError(t, rec.Decode(&ex))
	assert.Equal(t, "q", ex.Query)
	assert.Equal(t, "r", ex.Response)
	assert.False(t, ex.Timestamp.IsZero())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(context.Background(), Options{
		Settings:   manifest.MemorySettings{Backend: manifest.BackendFile, Namespace: "python", FilePath: "knowledge/memory"},
		ProjectDir: dir,
	})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "python", s.Namespace())
	fs, ok := s.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "knowledge", "memory", "python"), fs.Dir())

	_, err = Open(context.Background(), Options{Settings: manifest.MemorySettings{Backend: manifest.BackendRedis}})
	assert.Error(t, err)

	_, err = Open(context.Background(), Options{Settings: manifest.MemorySettings{Backend: "s3"}})
	assert.Error(t, err)
}
