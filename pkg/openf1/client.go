// Package openf1 retrieves data from the OpenF1 REST API as tabular result sets.
//
// Client.Fetch is the single request primitive; the catalog methods
// (Meetings, Laps, CarData, ...) bind it to one remote resource each.
package openf1

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"openf1telemetry/pkg/model"
)

const (
	BaseURLKey     = "BASE_API_URL"
	DefaultBaseURL = "https://api.openf1.org/v1/"
)

// Client is immutable once built and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request; zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    base,
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NormalizeBaseURL checks that raw is an absolute http(s) URL and returns it
// with exactly one trailing slash, so endpoints can be appended directly.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ConfigError{Key: BaseURLKey, Err: errors.New("not set")}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigError{Key: BaseURLKey, Err: errors.Wrap(err, "malformed url")}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ConfigError{Key: BaseURLKey, Err: errors.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return "", &ConfigError{Key: BaseURLKey, Err: errors.New("missing host")}
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", &ConfigError{Key: BaseURLKey, Err: errors.New("must not carry a query or fragment")}
	}
	return strings.TrimRight(raw, "/") + "/", nil
}

// URL assembles the fully encoded request URL for endpoint and params and
// checks that it parses.
func (c *Client) URL(endpoint string, params model.Params) (string, error) {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return "", &RequestError{Endpoint: endpoint, Err: ErrEmptyEndpoint}
	}
	target := c.baseURL + endpoint
	if q := params.Encode(); q != "" {
		target += "?" + q
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		return "", &RequestError{Endpoint: endpoint, Err: errors.Wrap(ErrInvalidURL, err.Error())}
	}
	return target, nil
}

// Fetch issues one GET against endpoint and returns the response rows.
// A non-2xx status, a transport failure or a body that is not a JSON array of
// objects is returned as an error and no rows are produced.
func (c *Client) Fetch(ctx context.Context, endpoint string, params model.Params) (*model.ResultSet, error) {
	target, err := c.URL(endpoint, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: errors.Wrap(err, "create request")}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", target).Msg("openf1 request failed")
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: errors.Wrap(err, "read body")}
	}

	log := c.logger.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Msg("openf1 request rejected")
		return nil, &RemoteStatusError{URL: target, StatusCode: resp.StatusCode, Body: string(body)}
	}

	rs, err := model.DecodeResultSet(body)
	if err != nil {
		log.Err(err).Msg("openf1 response not decodable")
		return nil, &DecodeError{URL: target, Err: err}
	}
	log.Int("rows", rs.Len()).Msg("openf1 request done")
	return rs, nil
}
