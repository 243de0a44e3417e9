// Package backend talks to the instructor dashboard endpoints the panel is
// configured with.
package backend

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gradebook/internal/domain"
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	Status   int
	Endpoint string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
}

// Client posts form-encoded requests and returns raw JSON bodies. It sets no
// timeout of its own; a request lives as long as its context.
type Client struct {
	base *url.URL
	http *http.Client
	log  logrus.FieldLogger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the request logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client resolving relative endpoints against baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{
		base: base,
		http: &http.Client{},
		log:  logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Resolve turns a configured endpoint into an absolute URL.
func (c *Client) Resolve(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	return c.base.ResolveReference(ref).String(), nil
}

// Post sends data form-encoded to endpoint and returns the response body.
// A nil data map sends an empty body.
func (c *Client) Post(ctx context.Context, endpoint string, data domain.RequestData) ([]byte, error) {
	target, err := c.Resolve(endpoint)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(data.Values().Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	body, _, err := c.do(req, endpoint)
	return body, err
}

// Download is a file fetched by Get.
type Download struct {
	Name string
	Body []byte
}

// Get fetches target and names the result after its Content-Disposition
// filename, falling back to the last path segment.
func (c *Client) Get(ctx context.Context, target string) (Download, error) {
	resolved, err := c.Resolve(target)
	if err != nil {
		return Download{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return Download{}, err
	}

	body, header, err := c.do(req, target)
	if err != nil {
		return Download{}, err
	}
	return Download{Name: filename(header, req.URL), Body: body}, nil
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, http.Header, error) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	fields := logrus.Fields{
		"request_id": requestID,
		"method":     req.Method,
		"endpoint":   endpoint,
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Warn("request failed")
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	fields["status"] = resp.StatusCode
	fields["duration"] = time.Since(start).String()
	if err != nil {
		c.log.WithFields(fields).WithError(err).Warn("reading response failed")
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		c.log.WithFields(fields).Warn("request rejected")
		return nil, nil, &StatusError{Status: resp.StatusCode, Endpoint: endpoint}
	}

	c.log.WithFields(fields).Debug("request completed")
	return body, resp.Header, nil
}

func filename(h http.Header, u *url.URL) string {
	if _, params, err := mime.ParseMediaType(h.Get("Content-Disposition")); err == nil {
		if name := path.Base(params["filename"]); name != "." && name != "/" && params["filename"] != "" {
			return name
		}
	}
	if name := path.Base(u.Path); name != "." && name != "/" {
		return name
	}
	return "download"
}
