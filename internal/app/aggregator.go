package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samachar-desk/daily-brief/internal/config"
	"github.com/samachar-desk/daily-brief/internal/crawler"
	"github.com/samachar-desk/daily-brief/internal/domain"
	"github.com/samachar-desk/daily-brief/internal/logger"
	"github.com/samachar-desk/daily-brief/internal/snapshot"
	"github.com/samachar-desk/daily-brief/internal/summarizer"
	"github.com/samachar-desk/daily-brief/pkg/httpclient"
	"github.com/samachar-desk/daily-brief/pkg/publishers"
	"github.com/samachar-desk/daily-brief/pkg/sources"
)

// Aggregator wires sources, harvester, summarizer, snapshot writer, and
// publishers, and executes one aggregation run.
type Aggregator struct {
	cfg        *config.Config
	sourceReg  *sources.Registry
	harvester  *crawler.Service
	summarizer *summarizer.Summarizer
	writer     *snapshot.Writer
	fanout     *publishers.Fanout
	delay      time.Duration
	log        logger.Logger
}

// NewAggregator builds the aggregation runtime from config.
func NewAggregator(ctx context.Context, cfg *config.Config, log logger.Logger) (*Aggregator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	srcs := sourceReg.All()
	keys := make([]string, 0, len(srcs))
	for _, s := range srcs {
		keys = append(keys, s.Key)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(keys),
		"keys":  keys,
	})

	feedClient := httpclient.New(cfg.FeedFetchTimeout)
	pageClient := httpclient.New(cfg.PageFetchTimeout)
	fetcherReg := sources.DefaultFetcherRegistry(feedClient, pageClient, log)
	fallbackFeeds := sources.NewFeedFetcher(feedClient, log)

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	writer, err := snapshot.NewWriter(cfg.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("init snapshot writer: %w", err)
	}

	summ := summarizer.New(summarizer.Config{
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.SummaryModel,
		MaxTokens: cfg.SummaryMaxTokens,
	}, log)

	return &Aggregator{
		cfg:        cfg,
		sourceReg:  sourceReg,
		harvester:  crawler.NewService(fetcherReg, fallbackFeeds, log),
		summarizer: summ,
		writer:     writer,
		fanout:     fanout,
		delay:      cfg.SummaryDelay,
		log:        log,
	}, nil
}

// buildFanout assembles the publisher fanout; no publishers file means a
// zero-size fanout and publishing is skipped.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	pubReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), pubReg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	return publishers.NewFanout(pubs), nil
}

// Run executes a single aggregation pass: harvest, summarize, snapshot,
// publish. Per-source failures are absorbed; only the snapshot write is
// fatal.
func (a *Aggregator) Run(ctx context.Context) error {
	if a == nil || a.harvester == nil {
		return fmt.Errorf("aggregator is not initialized")
	}

	start := time.Now()
	srcs := a.sourceReg.All()
	a.log.InfoObj("aggregation started", "run_meta", map[string]any{
		"sources_count":      len(srcs),
		"summarizer_enabled": a.summarizer.Enabled(),
		"started_at":         start.UTC(),
	})

	results, err := a.harvester.Run(ctx, srcs)
	if err != nil {
		return fmt.Errorf("harvest sources: %w", err)
	}

	brief := domain.Brief{
		LastUpdated: time.Now().Format(time.RFC3339),
		Sources:     make(map[string][]domain.Section, len(results)),
	}
	stats := make([]publishers.SourceStat, 0, len(results))

	for _, res := range results {
		a.summarizeSections(ctx, res)
		brief.Sources[res.Key] = res.Sections
		stats = append(stats, sourceStat(res))
	}

	if err := a.writer.Write(brief); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	a.log.InfoObj("snapshot written", "snapshot_meta", map[string]any{
		"path":       a.writer.Path(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if a.fanout.Size() > 0 {
		count, err := a.fanout.Publish(ctx, publishers.NewEvent(a.writer.Path(), stats))
		if err != nil {
			a.log.WarnObj("snapshot publish partially failed", "publish_error", err.Error())
		}
		a.log.InfoObj("snapshot event published", "publish_meta", map[string]any{
			"delivered": count,
			"total":     a.fanout.Size(),
		})
	}

	return nil
}

// summarizeSections attaches a summary to each section in place, pausing for
// the configured delay before every backend call.
func (a *Aggregator) summarizeSections(ctx context.Context, res crawler.Result) {
	if !a.summarizer.Enabled() {
		return
	}
	for i := range res.Sections {
		if !a.sleepDelay(ctx) {
			return
		}

		sec := &res.Sections[i]
		summary, err := a.summarizer.Summarize(ctx, res.Name, sec.Page, sec.Articles)
		if err != nil {
			a.log.WarnObj("section summarize failed", "summary_error", map[string]any{
				"source_key": res.Key,
				"page":       sec.Page,
				"error":      err.Error(),
			})
			continue
		}
		sec.Summary = summary
	}
}

// sleepDelay blocks for the configured summarize delay; false means the
// context was cancelled.
func (a *Aggregator) sleepDelay(ctx context.Context) bool {
	if a.delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func sourceStat(res crawler.Result) publishers.SourceStat {
	articles := 0
	for _, sec := range res.Sections {
		articles += len(sec.Articles)
	}
	return publishers.SourceStat{
		Key:      res.Key,
		Sections: len(res.Sections),
		Articles: articles,
	}
}
