package emby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// listFields is the field set requested for every movie item.
var listFields = []string{
	"OriginalTitle",
	"ProductionYear",
	"Genres",
	"Studios",
	"MediaSources",
	"ImageTags",
	"CriticRating",
	"ProviderIds",
	"DateCreated",
}

// HTTPDoer describes the HTTP client used by the Emby client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries one Emby server.
type Client struct {
	baseURL  string
	apiKey   string
	parentID string
	client   HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates an Emby client for the movie library folder parentID.
func New(baseURL, apiKey, parentID string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("emby url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("emby api key required")
	}
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return nil, errors.New("emby parent id required")
	}
	c := &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		parentID: parentID,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type itemsResponse struct {
	Items []json.RawMessage `json:"Items"`
}

// ListMovies returns the raw movie items under the configured parent folder,
// in server order. Items are returned undecoded so each can be validated on
// its own.
func (c *Client) ListMovies(ctx context.Context) ([]json.RawMessage, error) {
	endpoint, err := url.Parse(c.baseURL + "/Items")
	if err != nil {
		return nil, fmt.Errorf("parse emby url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("ParentId", c.parentID)
	params.Set("IncludeItemTypes", "Movie")
	params.Set("Recursive", "true")
	params.Set("Fields", strings.Join(listFields, ","))
	endpoint.RawQuery = params.Encode()

	resp, latency, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emby items returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode emby items: %w", err)
	}
	return payload.Items, nil
}

// Image downloads the primary image revision identified by tag.
func (c *Client) Image(ctx context.Context, itemID, tag string) ([]byte, error) {
	if strings.TrimSpace(itemID) == "" || strings.TrimSpace(tag) == "" {
		return nil, errors.New("item id and image tag required")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/Items/%s/Images/Primary", c.baseURL, url.PathEscape(itemID)))
	if err != nil {
		return nil, fmt.Errorf("parse emby url: %w", err)
	}
	params := url.Values{}
	params.Set("tag", tag)
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	resp, latency, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emby image returned %d (latency=%v)", resp.StatusCode, latency)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read emby image: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, target string) (*http.Response, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.client.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, latency, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	return resp, latency, nil
}
