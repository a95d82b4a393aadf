package statusapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client talks to a running daemon.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client for base, e.g. http://127.0.0.1:9464.
func NewClient(base string) *Client {
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

// KeySets fetches the summaries of all key sets.
func (c *Client) KeySets(ctx context.Context) ([]KeySetStatus, error) {
	var out []KeySetStatus
	if err := c.do(ctx, http.MethodGet, "/keysets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rotate asks the daemon to rotate all key sets now.
func (c *Client) Rotate(ctx context.Context) ([]KeySetStatus, error) {
	var out []KeySetStatus
	if err := c.do(ctx, http.MethodPost, "/rotate", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("daemon %s %s: %s", strings.ToLower(method), path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
