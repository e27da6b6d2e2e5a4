package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package sources contains the pluggable source configs (YAML/JSON) and the
// fetchers that turn a config into ordered sections.

const (
	// Supported source types.
	TypeScrape     = "scrape"
	TypeFeeds      = "feeds"
	TypeGoogleNews = "google_news"
)

// LabeledFeed pairs a section label with a syndication feed address.
type LabeledFeed struct {
	Page string `json:"page" yaml:"page"`
	URL  string `json:"url" yaml:"url"`
}

// ScrapeConfig holds the selector strategy for one publication's landing page.
type ScrapeConfig struct {
	URL                string `json:"url" yaml:"url"`
	BaseURL            string `json:"base_url" yaml:"base_url"`
	ContainerSelector  string `json:"container_selector" yaml:"container_selector"`
	TitleSelector      string `json:"title_selector" yaml:"title_selector"`
	PageNumberSelector string `json:"page_number_selector" yaml:"page_number_selector"`
	UserAgent          string `json:"user_agent" yaml:"user_agent"`
}

// Source describes one publication: a key for the snapshot, a fetch type, and
// the parameters that type needs. Adapters carry no logic beyond these lists.
type Source struct {
	Key           string        `json:"key" yaml:"key"`
	Name          string        `json:"name" yaml:"name"`
	Type          string        `json:"type" yaml:"type"`
	Feeds         []LabeledFeed `json:"feeds" yaml:"feeds"`
	Scrape        *ScrapeConfig `json:"scrape" yaml:"scrape"`
	FallbackFeeds []LabeledFeed `json:"fallback_feeds" yaml:"fallback_feeds"`
}

// registryFile represents the structure of the sources configuration file.
type registryFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry materializes source definitions in file order.
type Registry struct {
	sources []Source
	idx     map[string]Source
}

// LoadRegistry loads the source registry from a YAML/JSON file. An empty path
// yields the compiled-in default registry.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRegistry(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	return newRegistry(fileReg.Sources)
}

func newRegistry(defs []Source) (*Registry, error) {
	reg := &Registry{
		sources: make([]Source, len(defs)),
		idx:     make(map[string]Source, len(defs)),
	}
	for i := range defs {
		src := sanitizeSource(defs[i])
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := reg.idx[src.Key]; exists {
			return nil, fmt.Errorf("duplicate source key %q", src.Key)
		}
		reg.sources[i] = src
		reg.idx[src.Key] = src
	}
	return reg, nil
}

// parseRegistry attempts to decode the sources file content.
func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

// sanitizeSource trims and normalizes the source config fields.
func sanitizeSource(src Source) Source {
	src.Key = strings.TrimSpace(src.Key)
	src.Name = strings.TrimSpace(src.Name)
	src.Type = strings.ToLower(strings.TrimSpace(src.Type))
	src.Feeds = sanitizeFeeds(src.Feeds)
	src.FallbackFeeds = sanitizeFeeds(src.FallbackFeeds)

	if src.Scrape != nil {
		sc := *src.Scrape
		sc.URL = strings.TrimSpace(sc.URL)
		sc.BaseURL = strings.TrimSpace(sc.BaseURL)
		sc.ContainerSelector = strings.TrimSpace(sc.ContainerSelector)
		sc.TitleSelector = strings.TrimSpace(sc.TitleSelector)
		sc.PageNumberSelector = strings.TrimSpace(sc.PageNumberSelector)
		sc.UserAgent = strings.TrimSpace(sc.UserAgent)
		src.Scrape = &sc
	}

	return src
}

func sanitizeFeeds(feeds []LabeledFeed) []LabeledFeed {
	if len(feeds) == 0 {
		return nil
	}
	out := make([]LabeledFeed, 0, len(feeds))
	for _, f := range feeds {
		f.Page = strings.TrimSpace(f.Page)
		f.URL = strings.TrimSpace(f.URL)
		if f.Page == "" || f.URL == "" {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateSource checks that required fields are present for the source type.
func validateSource(src Source) error {
	if src.Key == "" {
		return errors.New("key is required")
	}
	if src.Name == "" {
		return fmt.Errorf("name is required for source %q", src.Key)
	}
	switch src.Type {
	case TypeScrape:
		if src.Scrape == nil {
			return fmt.Errorf("scrape config required for source %q", src.Key)
		}
		if src.Scrape.URL == "" {
			return fmt.Errorf("scrape.url is required for source %q", src.Key)
		}
		if src.Scrape.BaseURL == "" {
			return fmt.Errorf("scrape.base_url is required for source %q", src.Key)
		}
		if src.Scrape.ContainerSelector == "" || src.Scrape.TitleSelector == "" {
			return fmt.Errorf("scrape selectors are required for source %q", src.Key)
		}
	case TypeFeeds, TypeGoogleNews:
		if len(src.Feeds) == 0 {
			return fmt.Errorf("at least one feed is required for source %q", src.Key)
		}
	case "":
		return fmt.Errorf("type is required for source %q", src.Key)
	default:
		return fmt.Errorf("unsupported type %q for source %q", src.Type, src.Key)
	}
	return nil
}

// All returns the configured sources in file order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// ByKey returns the source config for the given key, if present.
func (r *Registry) ByKey(key string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	src, ok := r.idx[strings.TrimSpace(key)]
	return src, ok
}
