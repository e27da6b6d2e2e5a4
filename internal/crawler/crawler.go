// Package crawler runs the per-source harvest pass, applying the scrape
// fallback policy as an explicit step rather than exception control flow.
package crawler

import (
	"context"
	"fmt"

	"github.com/samachar-desk/daily-brief/internal/domain"
	"github.com/samachar-desk/daily-brief/internal/logger"
	"github.com/samachar-desk/daily-brief/pkg/sources"
)

// Result pairs a source key with the sections it produced; Sections is empty
// (never nil semantics beyond length zero) when the source failed entirely.
type Result struct {
	Key      string
	Name     string
	Sections []domain.Section
}

// Service coordinates harvesting across the configured sources.
type Service struct {
	registry sources.FetcherRegistry
	feeds    *sources.FeedFetcher
	log      logger.Logger
}

// NewService wires a harvest service with the source fetcher registry. The
// feed fetcher is held separately to serve the scrape fallback path.
func NewService(reg sources.FetcherRegistry, feeds *sources.FeedFetcher, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if feeds == nil {
		feeds = sources.NewFeedFetcher(nil, log)
	}
	return &Service{registry: reg, feeds: feeds, log: log}
}

// Run harvests every source in order. Per-source failures are isolated: a
// failed source yields an empty section list, and Run itself never fails.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) ([]Result, error) {
	if s == nil || s.registry == nil {
		return nil, fmt.Errorf("harvest service is not initialized")
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("no sources configured for harvesting")
	}

	results := make([]Result, 0, len(srcs))
	for _, src := range srcs {
		results = append(results, Result{
			Key:      src.Key,
			Name:     src.Name,
			Sections: s.harvestSource(ctx, src),
		})
	}
	return results, nil
}

// harvestSource fetches one source and applies the failure policy: fetch
// error or zero sections → fallback feeds when declared, otherwise empty.
func (s *Service) harvestSource(ctx context.Context, src sources.Source) []domain.Section {
	fetcher, err := s.registry.FetcherFor(src)
	if err != nil {
		s.log.ErrorObj("source fetcher missing", "source_error", map[string]any{
			"source_key": src.Key,
			"error":      err.Error(),
		})
		return []domain.Section{}
	}

	secs, err := fetcher.Fetch(ctx, src)
	if err != nil || len(secs) == 0 {
		if len(src.FallbackFeeds) > 0 {
			s.log.WarnObj("source falling back to feeds", "source_fallback", map[string]any{
				"source_key": src.Key,
				"reason":     fetchFailureReason(err, len(secs)),
			})
			secs = s.feeds.FetchLabeled(ctx, src.Key, src.FallbackFeeds, sources.FallbackFeedLimit)
		} else if err != nil {
			s.log.ErrorObj("source harvest failed", "source_error", map[string]any{
				"source_key": src.Key,
				"error":      err.Error(),
			})
		}
	}

	if len(secs) == 0 {
		s.log.WarnObj("no sections found for source", "source_key", src.Key)
		return []domain.Section{}
	}

	s.log.InfoObj("source harvest completed", "source_result", map[string]any{
		"source_key": src.Key,
		"sections":   len(secs),
	})
	return secs
}

func fetchFailureReason(err error, sections int) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("empty yield (%d sections)", sections)
}
