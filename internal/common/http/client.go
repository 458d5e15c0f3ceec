// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is a thin wrapper over net/http. Callers bound requests with a
// context on the request itself; a zero timeout leaves the client unbounded.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
