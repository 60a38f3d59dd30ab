package catalogue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPFeed(t *testing.T) {
	body, err := os.ReadFile("testdata/films.json")
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/films.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	films, err := NewHTTPFeed(srv.URL + "/films.json").Films(context.Background())
	require.NoError(t, err)
	assert.Len(t, films, 3)

	_, err = NewHTTPFeed(srv.URL + "/missing").Films(context.Background())
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestFileFeed_Errors(t *testing.T) {
	_, err := FileFeed{Path: "testdata/nope.json"}.Films(context.Background())
	assert.Error(t, err)
}

type stubFeed struct {
	calls int
	films []Film
	err   error
}

func (s *stubFeed) Films(context.Context) ([]Film, error) {
	s.calls++
	return s.films, s.err
}

func TestCached(t *testing.T) {
	stub := &stubFeed{films: []Film{{Title: "A"}}}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCached(stub, time.Minute, zap.NewNop())
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := c.Films(ctx)
	require.NoError(t, err)
	_, err = c.Films(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)

	now = now.Add(2 * time.Minute)
	stub.err = errors.New("down")
	films, err := c.Films(ctx)
	require.NoError(t, err, "stale copy is served")
	assert.Equal(t, "A", films[0].Title)
	assert.Equal(t, 2, stub.calls)
}

func TestCached_FirstFailurePropagates(t *testing.T) {
	c := NewCached(&stubFeed{err: errors.New("down")}, time.Minute, nil)
	_, err := c.Films(context.Background())
	assert.Error(t, err)
}
