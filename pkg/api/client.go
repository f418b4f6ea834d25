// Package api implements the REST client for the AlgoBulls algorithmic
// trading platform (https://www.algobulls.com): strategy CRUD, instrument
// search, job start/stop and status/log/report retrieval.
package api

import (
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the AlgoBulls production API origin.
const DefaultBaseURL = "https://api.algobulls.com"

var log = logrus.WithField("component", "algobulls_api")

// Client talks to the AlgoBulls backend. It is synchronous and carries no
// retry or timeout policy: a hung call blocks until the transport gives up.
//
// Client is not safe for concurrent use. The per-mode instance key slots
// are plain fields written without synchronization; the worst case across
// goroutines is a redundant registration call per mode.
type Client struct {
	baseURL string
	http    *resty.Client

	// authHeader is the raw access token, sent verbatim as the
	// Authorization header (the platform does not use a "Bearer " prefix).
	// Empty until SetAccessToken is called.
	authHeader string

	// Backend-assigned strategy instance keys, one slot per trading type.
	// Filled lazily on first use and never invalidated for the lifetime
	// of the client.
	keyBacktesting  string
	keyPaperTrading string
	keyRealTrading  string
}

// NewClient creates a client against the given origin. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		baseURL: baseURL,
		http:    resty.New(),
	}
}

// SetAccessToken stores the access token used for all subsequent authorized
// requests. The token is not validated here; a bad token surfaces as an
// Unauthorized error on the next call that needs it.
func (c *Client) SetAccessToken(token string) {
	c.authHeader = token
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}
