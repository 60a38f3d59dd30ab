package kvstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Seats []string `json:"seats"`
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	ns := uuid.NewString()
	other := uuid.NewString()

	_, err := s.Get(ctx, ns, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SetJSON(ctx, s, ns, "booking", doc{Seats: []string{"A2", "B5"}}))
	require.NoError(t, s.Set(ctx, ns, "cart", []byte(`{}`)))
	require.NoError(t, s.Set(ctx, other, "booking", []byte(`{"seats":["C1"]}`)))

	var got doc
	require.NoError(t, GetJSON(ctx, s, ns, "booking", &got))
	assert.Equal(t, []string{"A2", "B5"}, got.Seats)

	require.NoError(t, s.Clear(ctx, ns))
	_, err = s.Get(ctx, ns, "booking")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, ns, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	// other namespaces survive a clear
	require.NoError(t, GetJSON(ctx, s, other, "booking", &got))
	assert.Equal(t, []string{"C1"}, got.Seats)
	require.NoError(t, s.Clear(ctx, other))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "ns", "k", buf))
	buf[0] = 'x'

	got, err := s.Get(ctx, "ns", "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestGetJSON_CorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "ns", "booking", []byte("{not json")))

	var got doc
	err := GetJSON(ctx, s, "ns", "booking", &got)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err())

	exerciseStore(t, NewRedisStore(rdb, "kvtest"))
}
