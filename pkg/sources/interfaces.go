package sources

import (
	"context"

	"github.com/samachar-desk/daily-brief/internal/domain"
	"github.com/samachar-desk/daily-brief/pkg/httpclient"
)

// Fetcher produces the ordered sections for one source. Implementations live
// in fetcher-specific files (feeds.go, scraper.go).
type Fetcher interface {
	Type() string
	Fetch(ctx context.Context, src Source) ([]domain.Section, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source config.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client

// Logger is the logging surface fetchers rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
