package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/samachar-desk/daily-brief/internal/domain"
)

// FrontPageLabel names the section that collects articles seen before any
// page-number indicator.
const FrontPageLabel = "Front Page"

// PageScraper fetches a publication's landing page and segments the
// discovered article links into page sections using the source's selector
// strategy. The heuristic is deliberately brittle: callers substitute the
// source's fallback feeds when it errors or yields nothing.
type PageScraper struct {
	client HTTPClient
	log    Logger
}

// NewPageScraper builds a scraper with the provided HTTP client (or default).
func NewPageScraper(client HTTPClient, log Logger) *PageScraper {
	if client == nil {
		client = DefaultPageClient()
	}
	return &PageScraper{client: client, log: ensureLogger(log)}
}

// Type returns the source type this fetcher serves.
func (s *PageScraper) Type() string { return TypeScrape }

// Fetch retrieves and segments the landing page. It returns an error for
// transport and parse failures and an empty slice for a structurally
// unrecognized page; it never performs the fallback itself.
func (s *PageScraper) Fetch(ctx context.Context, src Source) ([]domain.Section, error) {
	if src.Scrape == nil {
		return nil, fmt.Errorf("source %q has no scrape configuration", src.Key)
	}
	sc := src.Scrape

	headers := make(map[string]string, 1)
	if sc.UserAgent != "" {
		headers["User-Agent"] = sc.UserAgent
	}

	resp, err := s.client.Get(ctx, sc.URL, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return extractSections(doc, sc), nil
}

// extractSections walks the candidate containers in document order, keeping a
// current-page accumulator that rolls over to "Page {n}" when a fresh
// page-number indicator appears.
func extractSections(doc *goquery.Document, sc *ScrapeConfig) []domain.Section {
	current := &domain.Section{Page: FrontPageLabel}
	all := []*domain.Section{current}
	lastPage := ""

	doc.Find(sc.ContainerSelector).Each(func(_ int, el *goquery.Selection) {
		titleEl := el.Find(sc.TitleSelector).First()
		if titleEl.Length() == 0 {
			return
		}

		title := CleanText(titleEl.Text())
		href, _ := titleEl.Attr("href")
		link := resolveLink(href, sc.BaseURL)

		if sc.PageNumberSelector != "" {
			if pageEl := el.Find(sc.PageNumberSelector).First(); pageEl.Length() > 0 {
				num := CleanText(pageEl.Text())
				if num != "" && num != lastPage {
					// A fresh indicator only opens a new section when the
					// current accumulator holds articles. The number is
					// recorded as seen either way.
					if len(current.Articles) > 0 {
						current = &domain.Section{Page: "Page " + num}
						all = append(all, current)
					}
					lastPage = num
				}
			}
		}

		if title == "" || link == "" {
			return
		}
		for _, a := range current.Articles {
			if a.Link == link {
				return
			}
		}
		current.Articles = append(current.Articles, domain.Article{Title: title, Link: link})
	})

	out := make([]domain.Section, 0, len(all))
	for _, sec := range all {
		if sec.HasArticles() {
			out = append(out, *sec)
		}
	}
	return out
}
