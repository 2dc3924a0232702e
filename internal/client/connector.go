package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Connector issues HTTP requests against the API. Cookies set by the server, such
// as the auth token, are kept in a jar and sent on every later request.
type Connector struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewConnector creates a Connector that prefixes relative URLs with baseURL.
func NewConnector(baseURL string, timeout time.Duration) (*Connector, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Connector{
		baseURL:    base,
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// SetCookie stores a cookie for the API host, e.g. a token obtained elsewhere.
func (c *Connector) SetCookie(cookie *http.Cookie) {
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{cookie})
}

// Do sends a request. body may be nil, an io.Reader sent as is, or a value encoded
// as JSON. nil headers and params mean none. The response status is not
// interpreted; the caller must close the body.
func (c *Connector) Do(ctx context.Context, method, rawURL string, body any, headers, params map[string]string) (*http.Response, error) {
	if method == "" {
		return nil, errors.New("method is required")
	}
	if rawURL == "" {
		return nil, errors.New("url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if !u.IsAbs() {
		// Relative paths are appended to the base path, never resolved against it.
		rel := u
		u = c.baseURL.JoinPath(rel.Path)
		u.RawQuery = rel.RawQuery
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	isJSON := false
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		isJSON = true
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.httpClient.Do(req)
}
