package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	var got []string
	found, err := GetCache(ctx, rdb, UserOrdersKey("u1"), &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, UserOrdersKey("u1"), []string{"ORD-001"}, time.Minute))
	found, err = GetCache(ctx, rdb, UserOrdersKey("u1"), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"ORD-001"}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, UserOrdersKey("u1"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, AllOrdersKey, 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, UserOrdersKey("u1"), 2, time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, AllOrdersKey, UserOrdersKey("u1")))
	assert.False(t, mr.Exists(AllOrdersKey))
	assert.False(t, mr.Exists(UserOrdersKey("u1")))
}

func TestNilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	var dest int
	found, err := GetCache(ctx, nil, AllOrdersKey, &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, AllOrdersKey, 1, time.Minute))
	assert.NoError(t, DeleteCache(ctx, nil, AllOrdersKey))
}
