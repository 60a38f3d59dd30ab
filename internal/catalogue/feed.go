package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Feed is a source of the film catalogue.
type Feed interface {
	Films(ctx context.Context) ([]Film, error)
}

// Decode parses a feed document: a JSON array of films.
func Decode(r io.Reader) ([]Film, error) {
	var films []Film
	if err := json.NewDecoder(r).Decode(&films); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	return films, nil
}

// FileFeed reads the catalogue from a JSON file on every call.
type FileFeed struct {
	Path string
}

func (f FileFeed) Films(_ context.Context) ([]Film, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// HTTPFeed fetches the catalogue from a URL.
type HTTPFeed struct {
	URL    string
	Client *http.Client
}

func NewHTTPFeed(url string) HTTPFeed {
	return HTTPFeed{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (f HTTPFeed) Films(ctx context.Context) ([]Film, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalogue request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalogue: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalogue: unexpected status %d", res.StatusCode)
	}
	return Decode(res.Body)
}

// Cached keeps the last successful result of a feed for TTL.  When a
// refresh fails and a previous result exists, the stale result is served
// and the failure logged.
type Cached struct {
	feed Feed
	ttl  time.Duration
	log  *zap.Logger
	now  func() time.Time

	mu      sync.Mutex
	films   []Film
	fetched time.Time
}

func NewCached(feed Feed, ttl time.Duration, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{feed: feed, ttl: ttl, log: log, now: time.Now}
}

func (c *Cached) Films(ctx context.Context) ([]Film, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.films != nil && c.now().Sub(c.fetched) < c.ttl {
		return c.films, nil
	}
	films, err := c.feed.Films(ctx)
	if err != nil {
		if c.films != nil {
			c.log.Warn("catalogue refresh failed, serving stale copy", zap.Error(err))
			return c.films, nil
		}
		return nil, err
	}
	if films == nil {
		films = []Film{}
	}
	c.films, c.fetched = films, c.now()
	return films, nil
}
