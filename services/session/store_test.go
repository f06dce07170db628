package session

import (
	"context"
	"os"
	"testing"
	"time"

	"servicehub/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", Record{SealedToken: "x"}, time.Minute))

	rec, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", rec.SealedToken)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", Record{SealedToken: "x"}, 0))
	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	created := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, "abc", Record{SealedToken: "sealed", CreatedAt: created}, time.Hour))
	assert.True(t, mr.Exists(utils.SessionKeyPrefix+"abc"))
	assert.Equal(t, time.Hour, mr.TTL(utils.SessionKeyPrefix+"abc"))

	rec, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "sealed", rec.SealedToken)
	assert.True(t, created.Equal(rec.CreatedAt))

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", Record{SealedToken: "sealed"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	store, mr := newRedisStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

// TestMongoStore runs against a real server when SERVICEHUB_TEST_MONGO_URL is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SERVICEHUB_TEST_MONGO_URL")
	if uri == "" {
		t.Skip("SERVICEHUB_TEST_MONGO_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	dbName := "servicehub_test_" + time.Now().Format("150405")
	defer func() { _ = client.Database(dbName).Drop(context.Background()) }()

	store, err := NewMongoStore(ctx, client, dbName)
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	require.NoError(t, store.Save(ctx, "abc", Record{SealedToken: "sealed", CreatedAt: time.Now()}, time.Hour))
	rec, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "sealed", rec.SealedToken)

	require.NoError(t, store.Save(ctx, "old", Record{SealedToken: "sealed"}, -time.Second))
	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
