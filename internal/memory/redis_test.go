package memory

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server when EXPERTKIT_TEST_REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("EXPERTKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("EXPERTKIT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	s, err := NewRedisStore(ctx, url, "test-"+uuid.NewString())
	require.NoError(t, err)
	defer s.Close()
	defer s.client.Del(ctx, s.hash)

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "b", "two"))
	require.NoError(t, s.Save(ctx, "a", 1))

	rec, err := s.Load(ctx, "b")
	require.NoError(t, err)
	assert.JSONEq(t, `"two"`, string(rec.Value))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not a url", "ns")
	assert.Error(t, err)
}
