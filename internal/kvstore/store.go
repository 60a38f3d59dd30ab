// Package kvstore is the per-browser key-value store of the booking flow.
// Every browser owns one namespace; keys inside a namespace hold JSON
// documents.  There is no expiry and no eviction: a namespace only goes away
// when it is cleared at the end of the flow.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is implemented by MemoryStore and RedisStore.
type Store interface {
	Get(ctx context.Context, ns, key string) ([]byte, error)
	Set(ctx context.Context, ns, key string, value []byte) error
	// Clear drops every key of the namespace.
	Clear(ctx context.Context, ns string) error
}

// GetJSON reads key and decodes it into v.  A missing key returns
// ErrNotFound and leaves v untouched.
func GetJSON(ctx context.Context, s Store, ns, key string, v any) error {
	raw, err := s.Get(ctx, ns, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("kvstore: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, ns, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore: encode %s: %w", key, err)
	}
	return s.Set(ctx, ns, key, raw)
}
