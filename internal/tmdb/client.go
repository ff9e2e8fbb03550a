package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when the requested record doesn't exist in TMDB.
var ErrNotFound = errors.New("not found in tmdb")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithLanguage sets the metadata language (e.g. "en-US").
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchMovie searches movies by title, filtered by year when year > 0.
// Returns the raw candidate list; classifying 0/1/many is the caller's job.
func (c *Client) SearchMovie(ctx context.Context, title string, year int) ([]Candidate, error) {
	params := url.Values{"query": {title}}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	key := "/3/search/movie?" + params.Encode()
	if cached, ok := c.cache.get(key); ok {
		return cached.([]Candidate), nil
	}

	var resp movieSearchResponse
	if err := c.getJSON(ctx, "/3/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("search movie %q: %w", title, err)
	}

	c.cache.set(key, resp.Results)
	return resp.Results, nil
}

// SearchSeries searches TV series by name.
func (c *Client) SearchSeries(ctx context.Context, name string) ([]Candidate, error) {
	params := url.Values{"query": {name}}
	key := "/3/search/tv?" + params.Encode()
	if cached, ok := c.cache.get(key); ok {
		return cached.([]Candidate), nil
	}

	var resp tvSearchResponse
	if err := c.getJSON(ctx, "/3/search/tv", params, &resp); err != nil {
		return nil, fmt.Errorf("search series %q: %w", name, err)
	}

	candidates := make([]Candidate, len(resp.Results))
	for i, r := range resp.Results {
		candidates[i] = Candidate{
			ID:          r.ID,
			Title:       r.Name,
			ReleaseDate: r.FirstAirDate,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
		}
	}

	c.cache.set(key, candidates)
	return candidates, nil
}

// MovieDetails fetches full movie metadata by TMDB id.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	key := fmt.Sprintf("/3/movie/%d", id)
	if cached, ok := c.cache.get(key); ok {
		return cached.(*MovieDetails), nil
	}

	details := &MovieDetails{}
	if err := c.getJSON(ctx, key, nil, details); err != nil {
		return nil, fmt.Errorf("movie details %d: %w", id, err)
	}

	c.cache.set(key, details)
	return details, nil
}

// SeriesDetails fetches full series metadata by TMDB id.
func (c *Client) SeriesDetails(ctx context.Context, id int64) (*SeriesDetails, error) {
	key := fmt.Sprintf("/3/tv/%d", id)
	if cached, ok := c.cache.get(key); ok {
		return cached.(*SeriesDetails), nil
	}

	details := &SeriesDetails{}
	if err := c.getJSON(ctx, key, nil, details); err != nil {
		return nil, fmt.Errorf("series details %d: %w", id, err)
	}

	c.cache.set(key, details)
	return details, nil
}

// EpisodeDetails fetches metadata for one episode of a series.
func (c *Client) EpisodeDetails(ctx context.Context, seriesID int64, season, episode int) (*EpisodeDetails, error) {
	key := fmt.Sprintf("/3/tv/%d/season/%d/episode/%d", seriesID, season, episode)
	if cached, ok := c.cache.get(key); ok {
		return cached.(*EpisodeDetails), nil
	}

	details := &EpisodeDetails{}
	if err := c.getJSON(ctx, key, nil, details); err != nil {
		return nil, fmt.Errorf("episode details S%02dE%02d of %d: %w", season, episode, seriesID, err)
	}

	c.cache.set(key, details)
	return details, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
