package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/samachar-desk/daily-brief/pkg/httpclient"
)

// stubHTTPResponse implements httpclient.Response.
type stubHTTPResponse struct {
	body       []byte
	statusCode int
}

func (s stubHTTPResponse) Body() []byte    { return s.body }
func (s stubHTTPResponse) StatusCode() int { return s.statusCode }

// stubHTTPClient serves canned responses keyed by URL; unknown URLs error.
type stubHTTPClient struct {
	responses map[string]stubHTTPResponse
	headers   map[string]string
}

func (s *stubHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	s.headers = headers
	resp, ok := s.responses[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return resp, nil
}

var scrapeTestConfig = &ScrapeConfig{
	URL:                "https://paper.example/today",
	BaseURL:            "https://paper.example",
	ContainerSelector:  ".item",
	TitleSelector:      "h3.title a",
	PageNumberSelector: ".page-num",
	UserAgent:          "test-agent",
}

func scrapeTestSource() Source {
	return Source{Key: "PAPER", Name: "Paper", Type: TypeScrape, Scrape: scrapeTestConfig}
}

func TestPageScraperSegmentsByPageNumber(t *testing.T) {
	html := `
<html><body>
  <div class="item"><span class="page-num">1</span><h3 class="title"><a href="/a1">First story</a></h3></div>
  <div class="item"><h3 class="title"><a href="/a2">Second story</a></h3></div>
  <div class="item"><span class="page-num">2</span><h3 class="title"><a href="/a3">Third story</a></h3></div>
  <div class="item"><span class="page-num">2</span><h3 class="title"><a href="/a3">Third story again</a></h3></div>
  <div class="item"><span class="page-num">3</span><h3 class="title"><a href="/a4">Fourth story</a></h3></div>
</body></html>`

	client := &stubHTTPClient{responses: map[string]stubHTTPResponse{
		scrapeTestConfig.URL: {body: []byte(html), statusCode: 200},
	}}
	scraper := NewPageScraper(client, nil)

	secs, err := scraper.Fetch(context.Background(), scrapeTestSource())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(secs) != 3 {
		t.Fatalf("expected 3 sections, got %d: %#v", len(secs), secs)
	}

	// The first indicator arrives while the accumulator is empty, so those
	// articles stay on the front page.
	if secs[0].Page != FrontPageLabel || len(secs[0].Articles) != 2 {
		t.Fatalf("front page = %#v", secs[0])
	}
	if secs[0].Articles[0].Link != "https://paper.example/a1" {
		t.Fatalf("relative link not resolved: %q", secs[0].Articles[0].Link)
	}

	// Duplicate link within the same page is dropped.
	if secs[1].Page != "Page 2" || len(secs[1].Articles) != 1 {
		t.Fatalf("page 2 = %#v", secs[1])
	}
	if secs[2].Page != "Page 3" || secs[2].Articles[0].Title != "Fourth story" {
		t.Fatalf("page 3 = %#v", secs[2])
	}

	if client.headers["User-Agent"] != "test-agent" {
		t.Fatalf("user agent header not sent: %#v", client.headers)
	}
}

func TestPageScraperAllowsSameLinkAcrossPages(t *testing.T) {
	html := `
<html><body>
  <div class="item"><h3 class="title"><a href="/a1">Story</a></h3></div>
  <div class="item"><span class="page-num">2</span><h3 class="title"><a href="/a1">Story</a></h3></div>
</body></html>`

	client := &stubHTTPClient{responses: map[string]stubHTTPResponse{
		scrapeTestConfig.URL: {body: []byte(html), statusCode: 200},
	}}
	scraper := NewPageScraper(client, nil)

	secs, err := scraper.Fetch(context.Background(), scrapeTestSource())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("expected link repeated across pages, got %#v", secs)
	}
}

func TestPageScraperSkipsContainersWithoutTitles(t *testing.T) {
	html := `
<html><body>
  <div class="item"><p>advert</p></div>
  <div class="item"><h3 class="title"><a href="/a1">Story</a></h3></div>
  <div class="item"><h3 class="title"><a>No href here</a></h3></div>
</body></html>`

	client := &stubHTTPClient{responses: map[string]stubHTTPResponse{
		scrapeTestConfig.URL: {body: []byte(html), statusCode: 200},
	}}
	scraper := NewPageScraper(client, nil)

	secs, err := scraper.Fetch(context.Background(), scrapeTestSource())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(secs) != 1 || len(secs[0].Articles) != 1 {
		t.Fatalf("expected single article, got %#v", secs)
	}
}

func TestPageScraperEmptyPageYieldsNoSections(t *testing.T) {
	client := &stubHTTPClient{responses: map[string]stubHTTPResponse{
		scrapeTestConfig.URL: {body: []byte("<html><body></body></html>"), statusCode: 200},
	}}
	scraper := NewPageScraper(client, nil)

	secs, err := scraper.Fetch(context.Background(), scrapeTestSource())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(secs) != 0 {
		t.Fatalf("expected no sections, got %#v", secs)
	}
}

func TestPageScraperErrorsOnBadStatus(t *testing.T) {
	client := &stubHTTPClient{responses: map[string]stubHTTPResponse{
		scrapeTestConfig.URL: {body: []byte("blocked"), statusCode: 403},
	}}
	scraper := NewPageScraper(client, nil)

	if _, err := scraper.Fetch(context.Background(), scrapeTestSource()); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestPageScraperErrorsWithoutScrapeConfig(t *testing.T) {
	scraper := NewPageScraper(&stubHTTPClient{}, nil)
	if _, err := scraper.Fetch(context.Background(), Source{Key: "X", Type: TypeScrape}); err == nil {
		t.Fatalf("expected error for missing scrape config")
	}
}
