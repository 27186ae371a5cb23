package cache

import (
	"context"
	"testing"

	"github.com/bizify/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable points at a port nothing listens on
var unreachable = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

func TestIdempotencyStoreFactory_Disabled(t *testing.T) {
	store, err := NewIdempotencyStoreFactory(config.RedisConfig{}).CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_FallsBack(t *testing.T) {
	store, err := NewIdempotencyStoreFactory(unreachable).CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_RedisRequired(t *testing.T) {
	_, err := NewIdempotencyStoreFactory(unreachable, WithInMemoryFallback(false)).CreateStore(context.Background())
	assert.ErrorContains(t, err, "redis required")
}
