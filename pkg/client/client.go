// Package client provides the WADM art-catalog API client: authenticated
// request construction, page and fetch-all operations, and artwork
// enhancement.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/wadm-client/pkg/httpclient"
	"github.com/Sternrassler/wadm-client/pkg/metrics"
	"github.com/Sternrassler/wadm-client/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	// DefaultHost is the production API base URL.
	DefaultHost = "https://www.werkaandemuur.nl/api"

	// DefaultPageSize is the number of artworks per listing page.
	DefaultPageSize = 10

	// MinPageSize and MaxPageSize bound Config.PageSize.
	MinPageSize = 1
	MaxPageSize = 33

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "wadm-client/1.0.0"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// Prometheus metrics for WADM client operations.
var (
	requestsTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: metrics.RequestsTotal,
		Help: "Total WADM requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.With(metrics.Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    metrics.RequestDuration,
		Help:    "WADM request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: metrics.ErrorsTotal,
		Help: "Total WADM request failures by class",
	}, []string{"class"})
)

// Client is the WADM API client. It holds no mutable state of its own.
type Client struct {
	transport httpclient.Client
	collector *pagination.Collector
	config    Config
	logger    zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Credentials; the API authenticates with Basic auth over "userId:accessToken".
	UserID      int
	AccessToken string

	// Host is the API base URL without trailing slash (default DefaultHost).
	Host string

	// PageSize is the number of artworks per page, 1..33.
	PageSize int

	// Debug logs every outgoing URL and every suppressed probe failure.
	Debug bool

	// UserAgent header (default DefaultUserAgent).
	UserAgent string

	// Timeout per request for the default transport. Zero disables it.
	Timeout time.Duration
}

// DefaultConfig returns a configuration for the production API.
func DefaultConfig(userID int, accessToken string) Config {
	return Config{
		UserID:      userID,
		AccessToken: accessToken,
		Host:        DefaultHost,
		PageSize:    DefaultPageSize,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
	}
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(t httpclient.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger replaces the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCollector replaces the collector used by the fetch-all operations.
func WithCollector(collector *pagination.Collector) Option {
	return func(c *Client) {
		c.collector = collector
	}
}

// New creates a new WADM client. It fails when the page size is out of range.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.PageSize < MinPageSize || cfg.PageSize > MaxPageSize {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidPageSize, cfg.PageSize)
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	cfg.Host = strings.TrimRight(cfg.Host, "/")

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Client{
		config: cfg,
		logger: log.With().Str("component", "wadm-client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = httpclient.NewRestyClient(cfg.Timeout)
	}
	if c.collector == nil {
		c.collector = pagination.NewCollector(pagination.DefaultConfig())
	}

	return c, nil
}

// ConnectionTest reports whether the API answers an unauthenticated health
// check with a success status. Failures yield false.
func (c *Client) ConnectionTest(ctx context.Context) bool {
	return c.probe(ctx, EndpointConnectionTest, false)
}

// AuthenticationTest reports whether the API accepts the configured
// credentials. Failures yield false.
func (c *Client) AuthenticationTest(ctx context.Context) bool {
	return c.probe(ctx, EndpointAuthenticationTest, true)
}

func (c *Client) probe(ctx context.Context, e Endpoint, authenticated bool) bool {
	resp, err := c.get(ctx, e, c.endpointBase(e), authenticated)
	if err != nil {
		if c.config.Debug {
			c.logger.Warn().Err(err).Str("endpoint", e.String()).Msg("Probe failed")
		}
		return false
	}
	return httpclient.IsSuccess(resp)
}

// GetArtworksPage fetches one page of the user's artworks. Pages below 1 are
// treated as page 1. The bool is false when the server has no data for the
// page (non-success status or unexpected body); err is set only when the
// request or decoding failed.
func (c *Client) GetArtworksPage(ctx context.Context, page int, filter *Filter) (ArtworkPage, bool, error) {
	return c.fetchPage(ctx, EndpointArtworks, c.endpointBase(EndpointArtworks), page, filter)
}

// GetArtworksByAlbumID fetches one page of an album's artworks with the same
// contract as GetArtworksPage. A zero albumID fails without a request.
func (c *Client) GetArtworksByAlbumID(ctx context.Context, albumID, page int, filter *Filter) (ArtworkPage, bool, error) {
	if albumID == 0 {
		return ArtworkPage{}, false, ErrMissingAlbumID
	}
	base := fmt.Sprintf("%s/%d", c.endpointBase(EndpointAlbum), albumID)
	return c.fetchPage(ctx, EndpointAlbum, base, page, filter)
}

// GetArtworkByID fetches a single artwork. The filter's order is ignored.
// A zero artworkID fails without a request.
func (c *Client) GetArtworkByID(ctx context.Context, artworkID int, filter *Filter) (ArtworkPlus, bool, error) {
	if artworkID == 0 {
		return ArtworkPlus{}, false, ErrMissingArtworkID
	}

	url := BuildURL(fmt.Sprintf("%s/%d/", c.endpointBase(EndpointArtwork), artworkID), filter)
	body, ok, err := c.getBody(ctx, EndpointArtwork, url)
	if err != nil || !ok {
		return ArtworkPlus{}, false, err
	}

	raw := gjson.GetBytes(body, "data.artwork")
	if !truthy(raw) {
		return ArtworkPlus{}, false, nil
	}

	var artwork Artwork
	if err := json.Unmarshal([]byte(raw.Raw), &artwork); err != nil {
		return ArtworkPlus{}, false, c.decodeError(EndpointArtwork, url, err)
	}
	return Enhance(artwork), true, nil
}

// GetArtworks fetches every page of the user's artworks, in order. A listing
// longer than the collector's page limit yields the fetched artworks together
// with an error wrapping pagination.ErrPageLimit.
func (c *Client) GetArtworks(ctx context.Context, filter *Filter) ([]ArtworkPlus, error) {
	return pagination.Collect(ctx, c.collector, EndpointArtworks.String(),
		pageFetch(func(ctx context.Context, page int) (ArtworkPage, bool, error) {
			return c.GetArtworksPage(ctx, page, filter)
		}))
}

// GetArtworksByAlbum fetches every page of an album's artworks, in order, with
// the same page limit contract as GetArtworks.
func (c *Client) GetArtworksByAlbum(ctx context.Context, albumID int, filter *Filter) ([]ArtworkPlus, error) {
	if albumID == 0 {
		return nil, ErrMissingAlbumID
	}
	return pagination.Collect(ctx, c.collector, EndpointAlbum.String(),
		pageFetch(func(ctx context.Context, page int) (ArtworkPage, bool, error) {
			return c.GetArtworksByAlbumID(ctx, albumID, page, filter)
		}))
}

// pageFetch adapts a page operation to the pagination collector.
func pageFetch(fetch func(context.Context, int) (ArtworkPage, bool, error)) pagination.FetchFunc[ArtworkPlus] {
	return func(ctx context.Context, page int) (pagination.Page[ArtworkPlus], bool, error) {
		p, ok, err := fetch(ctx, page)
		if err != nil || !ok {
			return pagination.Page[ArtworkPlus]{}, false, err
		}
		return pagination.Page[ArtworkPlus]{
			Items:       p.Artworks,
			CurrentPage: p.Stats.CurrentPage,
			TotalPages:  p.Stats.TotalPages,
		}, true, nil
	}
}

func (c *Client) fetchPage(ctx context.Context, e Endpoint, base string, page int, filter *Filter) (ArtworkPage, bool, error) {
	if page < 1 {
		page = 1
	}

	url := BuildURL(PagePath(base, page, filter), filter)
	body, ok, err := c.getBody(ctx, e, url)
	if err != nil || !ok {
		return ArtworkPage{}, false, err
	}

	rawArtworks := gjson.GetBytes(body, "data.artworks")
	if !truthy(rawArtworks) {
		return ArtworkPage{}, false, nil
	}

	var artworks []Artwork
	if err := json.Unmarshal([]byte(rawArtworks.Raw), &artworks); err != nil {
		return ArtworkPage{}, false, c.decodeError(e, url, err)
	}

	var stats Stats
	if rawStats := gjson.GetBytes(body, "data.stats"); rawStats.IsObject() {
		if err := json.Unmarshal([]byte(rawStats.Raw), &stats); err != nil {
			return ArtworkPage{}, false, c.decodeError(e, url, err)
		}
	}

	result := ArtworkPage{
		Artworks: make([]ArtworkPlus, 0, len(artworks)),
		Stats:    stats,
	}
	for _, a := range artworks {
		result.Artworks = append(result.Artworks, Enhance(a))
	}
	return result, true, nil
}

// getBody performs an authenticated GET and returns the body of a success
// response. The bool is false for non-success statuses. A body that is not
// valid JSON is a decode failure.
func (c *Client) getBody(ctx context.Context, e Endpoint, url string) ([]byte, bool, error) {
	resp, err := c.get(ctx, e, url, true)
	if err != nil {
		return nil, false, err
	}

	if !httpclient.IsSuccess(resp) {
		c.logger.Debug().
			Str("endpoint", e.String()).
			Int("status", resp.StatusCode()).
			Str("status_class", statusClass(resp.StatusCode())).
			Msg("No data: non-success status")
		return nil, false, nil
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, false, c.decodeError(e, url, fmt.Errorf("invalid JSON body (%d bytes)", len(body)))
	}
	return body, true, nil
}

// get dispatches a GET through the transport and records metrics.
func (c *Client) get(ctx context.Context, e Endpoint, url string, authenticated bool) (httpclient.Response, error) {
	var headers map[string]string
	if authenticated {
		headers = c.headers()
	}

	if c.config.Debug {
		// Debug mode output must survive a global level above info.
		c.logger.Log().Str("endpoint", e.String()).Str("url", url).Msg("Fetching")
	}

	start := time.Now()
	resp, err := c.transport.Get(ctx, url, headers)
	requestDuration.WithLabelValues(e.String()).Observe(time.Since(start).Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(e.String(), "network_error").Inc()
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &RequestError{Endpoint: e, URL: url, Class: ErrorClassNetwork, Err: err}
	}

	requestsTotal.WithLabelValues(e.String(), strconv.Itoa(resp.StatusCode())).Inc()
	return resp, nil
}

func (c *Client) decodeError(e Endpoint, url string, err error) error {
	errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
	return &RequestError{Endpoint: e, URL: url, Class: ErrorClassDecode, Err: err}
}

// truthy reports whether a JSON value is present and not an empty scalar.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	default:
		return r.Exists()
	}
}
