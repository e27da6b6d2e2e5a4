package publishers

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Builder constructs a Publisher from its config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Registry resolves builders by publisher type.
type Registry interface {
	Register(typ string, b Builder)
	PublisherFor(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)
}

type builderSet struct {
	mu     sync.RWMutex
	byType map[string]Builder
}

// NewRegistry returns a registry seeded with the given builders.
func NewRegistry(builders map[string]Builder) Registry {
	set := &builderSet{byType: make(map[string]Builder, len(builders))}
	for typ, b := range builders {
		set.Register(typ, b)
	}
	return set
}

func (s *builderSet) Register(typ string, b Builder) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" || b == nil {
		return
	}
	s.mu.Lock()
	s.byType[typ] = b
	s.mu.Unlock()
}

func (s *builderSet) PublisherFor(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("publisher %q has no type configured", cfg.ID)
	}

	s.mu.RLock()
	b := s.byType[strings.ToLower(cfg.Type)]
	s.mu.RUnlock()

	if b == nil {
		return nil, fmt.Errorf("no publisher registered for type %q", cfg.Type)
	}
	return b(ctx, cfg, log)
}

// DefaultRegistry covers the built-in publisher types.
func DefaultRegistry() Registry {
	reg := NewRegistry(nil)
	reg.Register(TypeLog, newLogPublisher)
	reg.Register(TypeHTTP, newHTTPPublisher)
	reg.Register(TypeQueue, newQueuePublisher)
	return reg
}

// BuildAll instantiates one publisher per config entry, failing fast on the
// first entry the registry cannot serve.
func BuildAll(ctx context.Context, reg Registry, cfgs []PublisherConfig, log Logger) ([]Publisher, error) {
	if reg == nil || len(cfgs) == 0 {
		return nil, nil
	}

	pubs := make([]Publisher, 0, len(cfgs))
	for i, cfg := range cfgs {
		pub, err := reg.PublisherFor(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}
