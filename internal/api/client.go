package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

// Client talks to the remote storefront API over JSON/HTTP. It implements
// port.CartAPI and port.Catalog, mapping transport outcomes onto the cart
// error taxonomy.
type Client struct {
	baseURL string
	session port.Session
	httpC   *http.Client
}

func NewClient(baseURL string, timeout time.Duration, session port.Session) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpC:   &http.Client{Timeout: timeout},
	}, nil
}

func NewClientFromConfig(cfg config.Config, session port.Session) (*Client, error) {
	return NewClient(cfg.APIBaseURL, cfg.RequestTimeout, session)
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.httpC.CloseIdleConnections()
}

// doJSON issues one request and decodes a JSON response into out (when out
// is non-nil). Cart endpoints require the bearer credential; its absence
// fails fast without a network call.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, authenticated bool) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		token, ok := c.session.Token()
		if !ok {
			return domainAuthRequired("no bearer credential in session")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpC.Do(req)
	if err != nil {
		return mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}
