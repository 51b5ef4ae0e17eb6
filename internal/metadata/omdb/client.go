package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMovieNotFound is returned when OMDb answers with Response "False" and a
// not-found message.
var ErrMovieNotFound = errors.New("movie not found")

// Movie is the subset of the OMDb title payload the catalog uses.
type Movie struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	IMDbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Client queries OMDb by title.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchByTitle performs GET {base}/?apikey=K&t=title.
func (c *Client) FetchByTitle(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	var payload Movie
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	// OMDb reports bad keys as 401 with a JSON body carrying the reason.
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && payload.Error != "" {
			return nil, fmt.Errorf("omdb returned %d: %s (latency=%v)", resp.StatusCode, payload.Error, latency)
		}
		return nil, fmt.Errorf("omdb returned %d (latency=%v)", resp.StatusCode, latency)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode omdb response: %w", decodeErr)
	}

	if !strings.EqualFold(payload.Response, "True") {
		if payload.Error == "" || strings.Contains(strings.ToLower(payload.Error), "not found") {
			return nil, fmt.Errorf("%w: %q", ErrMovieNotFound, title)
		}
		return nil, fmt.Errorf("omdb: %s", payload.Error)
	}
	return &payload, nil
}
