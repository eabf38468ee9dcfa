package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	featuredCacheKey   = "featured"
	featuredFanOut     = 4
	maxResponseBytes   = 4 << 20
	defaultSearchLimit = 5
)

// Config holds catalog client settings
type Config struct {
	BaseURL         string
	FeaturedQueries []string
	FeaturedTTL     time.Duration
}

// Compile-time interface check.
var _ core.Catalog = (*Client)(nil)

// Client proxies the iTunes Search API
type Client struct {
	httpClient *http.Client
	baseURL    string
	queries    []string
	ttl        time.Duration
	cache      core.Cache[[]models.CatalogSong]
	metrics    core.Recorder
}

// NewClient creates a catalog client. httpClient should already carry the
// timeout and retry policy; featured results are kept in cache for cfg.FeaturedTTL.
func NewClient(
	cfg Config,
	httpClient *http.Client,
	cache core.Cache[[]models.CatalogSong],
	metrics core.Recorder,
) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		queries:    cfg.FeaturedQueries,
		ttl:        cfg.FeaturedTTL,
		cache:      cache,
		metrics:    metrics,
	}
}

// Search returns up to limit songs matching term. A non-positive limit uses the default of 5.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]models.CatalogSong, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	tracks, err := c.search(ctx, "search", term, limit)
	if err != nil {
		return nil, err
	}

	songs := make([]models.CatalogSong, 0, len(tracks))
	for _, t := range tracks {
		songs = append(songs, t.suggestion())
	}
	return songs, nil
}

// Lookup returns full details for a track id
func (c *Client) Lookup(ctx context.Context, id string) (*models.CatalogSong, error) {
	q := url.Values{}
	q.Set("id", id)
	q.Set("entity", "song")

	resp, err := c.get(ctx, "lookup", "/lookup", q)
	if err != nil {
		return nil, err
	}

	for _, t := range resp.Results {
		// lookup may include the parent collection; only tracks are songs
		if t.WrapperType != "" && t.WrapperType != "track" {
			continue
		}
		song := t.details()
		return &song, nil
	}
	return nil, ErrNotFound
}

// Featured returns the top result for each configured query, in query order.
// Queries with no result or a failed request are skipped.
func (c *Client) Featured(ctx context.Context) ([]models.CatalogSong, error) {
	return c.cache.GetWithFetch(
		ctx,
		featuredCacheKey,
		c.ttl,
		func(ctx context.Context, _ string) ([]models.CatalogSong, error) {
			return c.fetchFeatured(ctx)
		},
	)
}

func (c *Client) fetchFeatured(ctx context.Context) ([]models.CatalogSong, error) {
	slots := make([]*models.CatalogSong, len(c.queries))
	failures := make([]error, len(c.queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(featuredFanOut)
	for i, query := range c.queries {
		g.Go(func() error {
			tracks, err := c.search(gctx, "featured", query, 1)
			if err != nil {
				failures[i] = err
				log.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("featured query failed")
				return nil
			}
			if len(tracks) > 0 {
				song := tracks[0].featured()
				slots[i] = &song
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	songs := make([]models.CatalogSong, 0, len(slots))
	failed := 0
	for i, s := range slots {
		if failures[i] != nil {
			failed++
		}
		if s != nil {
			songs = append(songs, *s)
		}
	}
	if len(c.queries) > 0 && failed == len(c.queries) {
		return nil, failures[0]
	}
	return songs, nil
}

func (c *Client) search(ctx context.Context, op, term string, limit int) ([]itunesTrack, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("entity", "song")
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.get(ctx, op, "/search", q)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// get performs a catalog request and decodes the result envelope
func (c *Client) get(ctx context.Context, op, path string, q url.Values) (result *searchResponse, err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordCatalogRequest(op, err == nil, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%w: %s - %s", ErrUpstream, resp.Status, string(body))
	}

	var out searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUpstream, err)
	}
	return &out, nil
}
