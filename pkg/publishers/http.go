package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samachar-desk/daily-brief/pkg/httpclient"
)

// webhookPublisher posts the event as JSON to a configured endpoint, e.g. a
// static-site rebuild hook.
type webhookPublisher struct {
	id     string
	method string
	url    string
	extra  map[string]string
	client *resty.Client
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, _ Logger) (Publisher, error) {
	hc := cfg.HTTP
	if hc == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	return &webhookPublisher{
		id:     cfg.ID,
		method: hc.Method,
		url:    hc.URL,
		extra:  hc.Headers,
		client: httpclient.NewResty(time.Duration(hc.TimeoutSeconds) * time.Second),
	}, nil
}

func (w *webhookPublisher) ID() string   { return w.id }
func (w *webhookPublisher) Type() string { return TypeHTTP }

func (w *webhookPublisher) Publish(ctx context.Context, evt Event) error {
	req := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(evt)
	for k, v := range w.extra {
		req.SetHeader(k, v)
	}

	resp, err := req.Execute(w.method, w.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), trimBody(resp.Body()))
	}
	return nil
}

func trimBody(body []byte) string {
	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	return strings.TrimSpace(string(body))
}
