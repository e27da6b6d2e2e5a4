package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/samachar-desk/daily-brief/internal/domain"
)

const (
	// DefaultFeedLimit caps articles taken from each configured feed.
	DefaultFeedLimit = 15
	// FallbackFeedLimit caps articles taken from a scrape-fallback feed.
	FallbackFeedLimit = 20
)

// FeedFetcher turns labeled syndication feeds into sections. It serves both
// the feed-only sources and the scraper's fallback path.
type FeedFetcher struct {
	client HTTPClient
	parser *gofeed.Parser
	log    Logger
}

// NewFeedFetcher builds a feed fetcher with the provided HTTP client (or default).
func NewFeedFetcher(client HTTPClient, log Logger) *FeedFetcher {
	if client == nil {
		client = DefaultFeedClient()
	}
	return &FeedFetcher{
		client: client,
		parser: gofeed.NewParser(),
		log:    ensureLogger(log),
	}
}

// Type returns the primary source type this fetcher serves.
func (f *FeedFetcher) Type() string { return TypeFeeds }

// Fetch implements Fetcher over the source's labeled feed list.
func (f *FeedFetcher) Fetch(ctx context.Context, src Source) ([]domain.Section, error) {
	if len(src.Feeds) == 0 {
		return nil, fmt.Errorf("source %q has no feeds configured", src.Key)
	}
	return f.FetchLabeled(ctx, src.Key, src.Feeds, DefaultFeedLimit), nil
}

// FetchLabeled returns one section per pair that yielded at least one
// article. Failed or empty pairs are logged and omitted entirely; this never
// reports an error to the caller.
func (f *FeedFetcher) FetchLabeled(ctx context.Context, sourceKey string, feeds []LabeledFeed, limit int) []domain.Section {
	sections := make([]domain.Section, 0, len(feeds))
	for _, lf := range feeds {
		articles, err := f.FetchFeed(ctx, lf.URL, limit)
		if err != nil {
			f.log.WarnObj("feed fetch failed", "feed_error", map[string]any{
				"source": sourceKey,
				"page":   lf.Page,
				"url":    lf.URL,
				"error":  err.Error(),
			})
			continue
		}
		if len(articles) == 0 {
			continue
		}
		sections = append(sections, domain.Section{Page: lf.Page, Articles: articles})
	}
	return sections
}

// FetchFeed parses url as a syndication feed and returns the linked articles
// among its first limit entries, in feed order. Linkless entries still count
// against the cap. Titles are taken verbatim from the feed, without CleanText.
func (f *FeedFetcher) FetchFeed(ctx context.Context, url string, limit int) ([]domain.Article, error) {
	resp, err := f.client.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	articles := make([]domain.Article, 0, limit)
	for i, item := range feed.Items {
		if i >= limit {
			break
		}
		link := feedItemLink(item)
		if link == "" {
			continue
		}
		articles = append(articles, domain.Article{Title: item.Title, Link: link})
	}
	return articles, nil
}

// feedItemLink prefers the explicit link, falling back to a URL-shaped GUID.
func feedItemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if strings.HasPrefix(item.GUID, "http") {
		return item.GUID
	}
	return ""
}
