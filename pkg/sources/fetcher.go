package sources

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samachar-desk/daily-brief/pkg/httpclient"
)

// fetcherRegistry implements FetcherRegistry keyed by source type.
type fetcherRegistry struct {
	fetchers map[string]Fetcher
	mu       sync.RWMutex
}

// NewFetcherRegistry builds a registry from type-keyed fetchers.
func NewFetcherRegistry(fetchers map[string]Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{fetchers: make(map[string]Fetcher)}
	for typ, f := range fetchers {
		reg.register(typ, f)
	}
	return reg
}

func (r *fetcherRegistry) register(typ string, f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(typ))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchers[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given source based on its type.
func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchers[strings.ToLower(strings.TrimSpace(src.Type))]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.Key, src.Type)
}

const (
	defaultFeedTimeout = 15 * time.Second
	defaultPageTimeout = 30 * time.Second
)

// DefaultFeedClient returns the tuned HTTP client for feed fetches.
func DefaultFeedClient() HTTPClient { return httpclient.New(defaultFeedTimeout) }

// DefaultPageClient returns the tuned HTTP client for landing-page fetches.
func DefaultPageClient() HTTPClient { return httpclient.New(defaultPageTimeout) }

// DefaultFetcherRegistry wires up the known fetcher types. The google_news
// proxy sources are plain syndication feeds and share the feed fetcher.
func DefaultFetcherRegistry(feedClient, pageClient HTTPClient, log Logger) FetcherRegistry {
	feeds := NewFeedFetcher(feedClient, log)
	return NewFetcherRegistry(map[string]Fetcher{
		TypeFeeds:      feeds,
		TypeGoogleNews: feeds,
		TypeScrape:     NewPageScraper(pageClient, log),
	})
}
