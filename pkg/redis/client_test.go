package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	return mr, client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{
			name:        "Invalid URL",
			url:         "invalid://url",
			expectError: true,
		},
		{
			name:        "Empty URL",
			url:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", zap.NewNop())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			}
		})
	}
}

func TestClient_GetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	err := client.Set(ctx, "test:key1", "value1", time.Minute)
	require.NoError(t, err)

	value, err := client.Get(ctx, "test:key1")
	assert.NoError(t, err)
	assert.Equal(t, "value1", value)

	// TTL carried through
	assert.Greater(t, mr.TTL("test:key1"), time.Duration(0))

	// missing key is an error
	_, err = client.Get(ctx, "test:nonexistent")
	assert.Error(t, err)
}

func TestClient_SetNX(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	ok, err := client.SetNX(ctx, "test:dedup", "1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	// second attempt must not overwrite
	ok, err = client.SetNX(ctx, "test:dedup", "2", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	val, _ := mr.Get("test:dedup")
	assert.Equal(t, "1", val)
}

func TestClient_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	mr.Set("test:key1", "value1")
	mr.Set("test:key2", "value2")

	err := client.Delete(ctx, "test:key1", "test:key2")
	assert.NoError(t, err)

	for _, key := range []string{"test:key1", "test:key2"} {
		val, _ := mr.Get(key)
		assert.Empty(t, val)
	}

	// deleting a missing key is not an error
	assert.NoError(t, client.Delete(ctx, "test:nonexistent"))
}

func TestClient_Exists(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	mr.Set("test:exists1", "value1")

	count, err := client.Exists(ctx, "test:exists1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = client.Exists(ctx, "test:nonexistent")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestClient_Expire(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	mr.Set("test:expire1", "value1")

	err := client.Expire(ctx, "test:expire1", time.Hour)
	assert.NoError(t, err)
	assert.Greater(t, mr.TTL("test:expire1"), time.Duration(0))
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	err := client.Health(ctx)
	assert.NoError(t, err)

	mr.Close()
	err = client.Health(ctx)
	assert.Error(t, err)
}

func TestClient_Close(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	err := client.Close()
	assert.NoError(t, err)

	ctx := context.Background()
	_, err = client.Get(ctx, "test:key")
	assert.Error(t, err)
}
