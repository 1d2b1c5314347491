//go:build integration

package bsdd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idsforge/pkg/testutil/containers"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	cache := NewRedisCache(rc.Client)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "bsdd:classes:wall")
	assert.False(t, ok)

	cache.Set(ctx, "bsdd:classes:wall", []byte(`[{"name":"IfcWall"}]`), time.Minute)

	value, ok := cache.Get(ctx, "bsdd:classes:wall")
	require.True(t, ok)
	assert.Equal(t, `[{"name":"IfcWall"}]`, string(value))
}

func TestRedisCache_Expiry(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	cache := NewRedisCache(rc.Client)
	ctx := context.Background()

	cache.Set(ctx, "bsdd:classes:door", []byte(`[]`), 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "bsdd:classes:door")
		return !ok
	}, 2*time.Second, 25*time.Millisecond)
}
