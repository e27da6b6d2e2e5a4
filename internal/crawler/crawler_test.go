package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samachar-desk/daily-brief/internal/domain"
	"github.com/samachar-desk/daily-brief/pkg/httpclient"
	"github.com/samachar-desk/daily-brief/pkg/sources"
)

// stubFetcher returns fixed sections or a fixed error.
type stubFetcher struct {
	typ   string
	secs  []domain.Section
	err   error
	calls int
}

func (s *stubFetcher) Type() string { return s.typ }
func (s *stubFetcher) Fetch(context.Context, sources.Source) ([]domain.Section, error) {
	s.calls++
	return s.secs, s.err
}

type stubResponse struct {
	body       []byte
	statusCode int
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return s.statusCode }

type stubClient struct {
	responses map[string]stubResponse
}

func (s *stubClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	resp, ok := s.responses[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return resp, nil
}

func rssFeed(n int) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>T</title>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>https://f.example/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return []byte(b.String())
}

func TestRunRequiresSources(t *testing.T) {
	svc := NewService(sources.NewFetcherRegistry(nil), nil, nil)
	if _, err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty source list")
	}
}

func TestRunIsolatesSourceFailures(t *testing.T) {
	good := &stubFetcher{typ: sources.TypeFeeds, secs: []domain.Section{
		{Page: "Front Page", Articles: []domain.Article{{Title: "A", Link: "https://a"}}},
	}}
	reg := sources.NewFetcherRegistry(map[string]sources.Fetcher{
		sources.TypeFeeds:  good,
		sources.TypeScrape: &stubFetcher{typ: sources.TypeScrape, err: errors.New("blocked")},
	})
	svc := NewService(reg, sources.NewFeedFetcher(&stubClient{}, nil), nil)

	results, err := svc.Run(context.Background(), []sources.Source{
		{Key: "BAD", Name: "Bad", Type: sources.TypeScrape, Scrape: &sources.ScrapeConfig{}},
		{Key: "GOOD", Name: "Good", Type: sources.TypeFeeds},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Key != "BAD" || len(results[0].Sections) != 0 {
		t.Fatalf("failed source should yield empty sections: %#v", results[0])
	}
	if results[1].Key != "GOOD" || len(results[1].Sections) != 1 {
		t.Fatalf("healthy source affected by neighbor failure: %#v", results[1])
	}
}

func TestRunFallsBackOnScrapeError(t *testing.T) {
	reg := sources.NewFetcherRegistry(map[string]sources.Fetcher{
		sources.TypeScrape: &stubFetcher{typ: sources.TypeScrape, err: errors.New("403")},
	})
	feeds := sources.NewFeedFetcher(&stubClient{responses: map[string]stubResponse{
		"https://f.example/fallback.rss": {body: rssFeed(25), statusCode: 200},
	}}, nil)
	svc := NewService(reg, feeds, nil)

	results, err := svc.Run(context.Background(), []sources.Source{{
		Key:  "PAPER",
		Name: "Paper",
		Type: sources.TypeScrape,
		Scrape: &sources.ScrapeConfig{
			URL: "https://paper.example/today", BaseURL: "https://paper.example",
			ContainerSelector: ".x", TitleSelector: "a",
		},
		FallbackFeeds: []sources.LabeledFeed{{Page: "National", URL: "https://f.example/fallback.rss"}},
	}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	secs := results[0].Sections
	if len(secs) != 1 || secs[0].Page != "National" {
		t.Fatalf("fallback sections = %#v", secs)
	}
	if len(secs[0].Articles) != sources.FallbackFeedLimit {
		t.Fatalf("fallback should cap at %d articles, got %d", sources.FallbackFeedLimit, len(secs[0].Articles))
	}
}

func TestRunFallsBackOnEmptyScrapeYield(t *testing.T) {
	scraper := &stubFetcher{typ: sources.TypeScrape, secs: []domain.Section{}}
	reg := sources.NewFetcherRegistry(map[string]sources.Fetcher{sources.TypeScrape: scraper})
	feeds := sources.NewFeedFetcher(&stubClient{responses: map[string]stubResponse{
		"https://f.example/fallback.rss": {body: rssFeed(2), statusCode: 200},
	}}, nil)
	svc := NewService(reg, feeds, nil)

	results, err := svc.Run(context.Background(), []sources.Source{{
		Key:  "PAPER",
		Name: "Paper",
		Type: sources.TypeScrape,
		Scrape: &sources.ScrapeConfig{
			URL: "https://paper.example/today", BaseURL: "https://paper.example",
			ContainerSelector: ".x", TitleSelector: "a",
		},
		FallbackFeeds: []sources.LabeledFeed{{Page: "National", URL: "https://f.example/fallback.rss"}},
	}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if scraper.calls != 1 {
		t.Fatalf("scraper should be tried first, calls = %d", scraper.calls)
	}
	if len(results[0].Sections) != 1 || len(results[0].Sections[0].Articles) != 2 {
		t.Fatalf("fallback sections = %#v", results[0].Sections)
	}
}

func TestRunWithoutFallbackYieldsEmpty(t *testing.T) {
	reg := sources.NewFetcherRegistry(map[string]sources.Fetcher{
		sources.TypeFeeds: &stubFetcher{typ: sources.TypeFeeds, err: errors.New("down")},
	})
	svc := NewService(reg, sources.NewFeedFetcher(&stubClient{}, nil), nil)

	results, err := svc.Run(context.Background(), []sources.Source{
		{Key: "SRC", Name: "Src", Type: sources.TypeFeeds},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results[0].Sections) != 0 {
		t.Fatalf("expected empty sections, got %#v", results[0].Sections)
	}
}
