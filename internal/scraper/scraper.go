package scraper

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
	"golang.org/x/net/html/charset"
)

const (
	ResultsURL = "https://www.promiedos.com.ar"
	UserAgent  = "promiedos-alerts/1.0 (github.com/pfrederiksen/promiedos-alerts)"
	Timeout    = 30 * time.Second
)

// Scraper handles fetching and parsing the results page
type Scraper struct {
	client     *http.Client
	url        string
	selectors  Selectors
	normalizer *match.Normalizer
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the results page URL
func WithURL(url string) Option {
	return func(s *Scraper) {
		s.url = url
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// WithSelectors overrides the markup selector table
func WithSelectors(sel Selectors) Option {
	return func(s *Scraper) {
		s.selectors = sel
	}
}

// WithNormalizer overrides the time normalizer
func WithNormalizer(n *match.Normalizer) Option {
	return func(s *Scraper) {
		s.normalizer = n
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:       ResultsURL,
		selectors: DefaultSelectors(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.normalizer == nil {
		zone, err := match.LoadZone(match.SourceZone)
		if err != nil {
			zone = time.UTC
		}
		s.normalizer = match.NewNormalizer(zone)
	}
	return s
}

// Fetch downloads the results page and returns it as UTF-8 markup
func (s *Scraper) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching page")
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.Wrap(err, "detecting page encoding")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "reading page")
	}

	logger.RecordTiming("scraper.fetch", time.Since(start))
	logger.Debug("Fetched results page", logger.Fields{
		"url":   s.url,
		"bytes": len(data),
	})

	return data, nil
}

// FetchSnapshot fetches the results page and extracts all leagues and matches
func (s *Scraper) FetchSnapshot(ctx context.Context) (*match.Snapshot, error) {
	data, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.Parse(bytes.NewReader(data))
}
