// Package httpclient abstracts outbound HTTP so fetchers and tests can swap
// the transport.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues GET requests with per-call headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// restyClient adapts resty to the Client interface.
type restyClient struct {
	c *resty.Client
}

// New returns a Client backed by resty with the given request timeout.
func New(timeout time.Duration) Client {
	return &restyClient{c: NewResty(timeout)}
}

// NewResty exposes a configured resty.Client for callers needing custom verbs
// (the HTTP publisher posts through it directly).
func NewResty(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

func (r *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.c.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{resp: resp}, nil
}

type restyResponse struct {
	resp *resty.Response
}

func (r restyResponse) Body() []byte    { return r.resp.Body() }
func (r restyResponse) StatusCode() int { return r.resp.StatusCode() }
