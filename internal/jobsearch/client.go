// Package jobsearch looks up real job postings for a career through the
// Adzuna search API and normalizes them into Listing values.
package jobsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/career-guide/internal/logger"
	"github.com/spigell/career-guide/internal/utils"
)

const (
	apiURL         = "https://api.adzuna.com/v1/api/jobs"
	defaultCountry = "us"
	defaultTimeout = 10 * time.Second
	defaultLimit   = 20
	defaultRadius  = 25

	// pageStep is how many results one page is expected to cover when
	// working out the number of pages, maxPerPage the provider's page cap.
	pageStep   = 25
	maxPerPage = 50

	disabledHint = "set jobs.enabled (USE_REAL_JOBS) to true and configure jobs.app-id (ADZUNA_APP_ID) and jobs.app-key (ADZUNA_APP_KEY)"
)

var (
	ErrDisabled   = errors.New("job search is disabled")
	ErrEmptyQuery = errors.New("job search query is empty")
)

type Config struct {
	Enabled bool
	AppID   string
	AppKey  string
	// Country selects the provider market, e.g. "us" or "gb".
	Country string
	// Timeout bounds every page fetch.
	Timeout time.Duration
	// RequestsPerSecond paces page fetches. Zero means unlimited.
	RequestsPerSecond float64
}

// Affirmative reports whether a boolean-like flag value switches a feature on.
func Affirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

type SearchParams struct {
	Keywords    string
	CareerTitle string
	ZipCode     string
	RadiusMiles int
	Limit       int
}

func (p SearchParams) query() string {
	return utils.JoinNonEmpty(" ", p.CareerTitle, p.Keywords)
}

type Client struct {
	cfg          Config
	logger       *zap.Logger
	limiter      *rate.Limiter
	cache        Cache
	cacheTTL     time.Duration
	disabledOnce sync.Once

	HTTPClient *http.Client
	APIURL     string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

func WithAPIURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.APIURL = u
		}
	}
}

// WithCache stores successful page responses for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func New(cfg Config, log *zap.Logger, opts ...Option) *Client {
	cfg.AppID = strings.TrimSpace(cfg.AppID)
	cfg.AppKey = strings.TrimSpace(cfg.AppKey)
	cfg.Country = strings.ToLower(strings.TrimSpace(cfg.Country))
	if cfg.Country == "" {
		cfg.Country = defaultCountry
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		cfg:        cfg,
		logger:     logger.WithFields(log, zap.String(logger.FieldSource, source)),
		limiter:    rate.NewLimiter(limit, 1),
		HTTPClient: &http.Client{},
		APIURL:     apiURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the flag is on and both credentials are set.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled && c.cfg.AppID != "" && c.cfg.AppKey != ""
}

// SearchJobs returns up to params.Limit listings. It never fails: a disabled
// client, an empty query or a provider error all give what was collected so
// far, which may be an empty list.
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) []Listing {
	listings, err := c.Search(ctx, params)
	switch {
	case errors.Is(err, ErrDisabled):
		c.disabledOnce.Do(func() {
			c.logger.Warn("real job search is disabled; returning no listings", zap.String("hint", disabledHint))
		})
	case errors.Is(err, ErrEmptyQuery):
		c.logger.Debug("empty job search query; returning no listings")
	case err != nil:
		c.logger.Warn("job search failed; returning collected listings",
			zap.Int("collected", len(listings)),
			zap.Error(err),
		)
	}

	if listings == nil {
		return []Listing{}
	}
	return listings
}

// Search is SearchJobs with the reason for a short result exposed. On error
// the listings collected before the failure are still returned.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Listing, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	query := params.query()
	if query == "" {
		return nil, ErrEmptyQuery
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	radius := params.RadiusMiles
	if radius <= 0 {
		radius = defaultRadius
	}

	pages := (limit + pageStep - 1) / pageStep
	perPage := min(maxPerPage, limit)

	c.logger.Debug("searching jobs",
		zap.String("query", query),
		zap.String("zip_code", params.ZipCode),
		zap.Int("limit", limit),
		zap.Int("pages", pages),
	)

	var listings []Listing
	for page := 1; page <= pages; page++ {
		records, err := c.fetchPage(ctx, pageRequest{
			query:    query,
			where:    strings.TrimSpace(params.ZipCode),
			distance: radius,
			page:     page,
			perPage:  perPage,
		})
		if err != nil {
			return truncate(listings, limit), fmt.Errorf("page %d: %w", page, err)
		}

		if len(records) == 0 {
			c.logger.Debug("empty page; provider exhausted", zap.Int("page", page))
			break
		}

		for _, r := range records {
			if l, ok := c.normalize(r); ok {
				listings = append(listings, l)
			}
		}

		if len(listings) >= limit {
			break
		}
	}

	return truncate(listings, limit), nil
}

func truncate(listings []Listing, limit int) []Listing {
	if len(listings) > limit {
		return listings[:limit]
	}
	return listings
}
