package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const defaultCatalogTTL = 30 * time.Second

// Client handles all communication with the backend API.
type Client struct {
	BaseURL    string
	HttpClient *http.Client

	catalog *cache.Cache
}

// New creates a new client for interacting with the backend. catalogTTL
// controls how long public product listings are served from cache; zero or
// negative picks the default.
func New(baseURL string, catalogTTL time.Duration) *Client {
	if catalogTTL <= 0 {
		catalogTTL = defaultCatalogTTL
	}
	return &Client{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 15 * time.Second},
		catalog:    cache.New(catalogTTL, 2*catalogTTL),
	}
}

// do is the single, unified helper for making API requests.
// It accepts an optional slice of cookies to be attached to the request.
func (c *Client) do(method, path string, body io.Reader, contentType string, cookies ...*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// RequestClient binds a Client to the cookies of one inbound browser request,
// so view models can call the backend without knowing about http.Request.
type RequestClient struct {
	c *Client
	r *http.Request
}

// Bound returns a client scoped to the given request's cookies.
func (c *Client) Bound(r *http.Request) *RequestClient {
	return &RequestClient{c: c, r: r}
}
