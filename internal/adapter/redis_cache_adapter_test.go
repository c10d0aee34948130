package adapter

import (
	"context"
	"testing"
	"time"

	"learnloop/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapterGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)
	ctx := context.Background()

	mock.ExpectGet("key1").SetVal("value1")

	val, err := cacheAdapter.Get(ctx, "key1")
	assert.NoError(t, err)
	assert.Equal(t, "value1", val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)
	ctx := context.Background()

	mock.ExpectGet("absent").RedisNil()

	_, err := cacheAdapter.Get(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)
	ctx := context.Background()

	mock.ExpectSet("key1", "value1", time.Minute).SetVal("OK")

	err := cacheAdapter.Set(ctx, "key1", "value1", time.Minute)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)
	ctx := context.Background()

	mock.ExpectDel("key1").SetVal(1)

	err := cacheAdapter.Delete(ctx, "key1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
