// Package fetch is the bounded HTTP gateway for an analysis: a pair of
// primary requests (HEAD then GET) plus short auxiliary probes, each with
// its own hard timeout, all issued with a fixed identifying user-agent and
// screened by the private-address guard.
package fetch

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const UserAgent = "GetStack CMS Detector/1.0"

const (
	DefaultHeadTimeout  = 10 * time.Second
	DefaultBodyTimeout  = 15 * time.Second
	DefaultProbeTimeout = 5 * time.Second

	// maxBodyBytes caps how much of a response is read for scanning.
	maxBodyBytes = 2 << 20
)

// Response is the subset of an HTTP response the pipeline consumes.
type Response struct {
	StatusCode int
	Header     http.Header
	TLS        *tls.ConnectionState
}

// Client issues guarded, timeout-bounded requests. Safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	headTimeout  time.Duration
	bodyTimeout  time.Duration
	probeTimeout time.Duration
}

// Option adjusts a Client.
type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithTimeouts(head, body, probe time.Duration) Option {
	return func(c *Client) {
		if head > 0 {
			c.headTimeout = head
		}
		if body > 0 {
			c.bodyTimeout = body
		}
		if probe > 0 {
			c.probeTimeout = probe
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient builds a gateway client. Redirects are followed, but every hop
// is re-screened by the address guard so a public host cannot bounce the
// detector into a private network.
func NewClient(opts ...Option) *Client {
	c := &Client{
		userAgent:    UserAgent,
		headTimeout:  DefaultHeadTimeout,
		bodyTimeout:  DefaultBodyTimeout,
		probeTimeout: DefaultProbeTimeout,
	}
	c.httpClient = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return http.ErrUseLastResponse
			}
			return CheckTarget(req.URL.Host)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Head performs the primary HEAD request.
func (c *Client) Head(ctx context.Context, rawURL string) (*Response, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL, c.headTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, TLS: resp.TLS}, nil
}

// Body performs the primary GET request and returns the page text.
func (c *Client) Body(ctx context.Context, rawURL string) (string, *Response, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL, c.bodyTimeout)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", nil, err
	}
	return string(data), &Response{StatusCode: resp.StatusCode, Header: resp.Header, TLS: resp.TLS}, nil
}

// Probe performs a short auxiliary GET (REST index, directory listing,
// theme stylesheets). Callers treat any error as "feature unavailable".
func (c *Client) Probe(ctx context.Context, rawURL string) (string, int, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL, c.probeTimeout)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(data), resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, timeout time.Duration) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if err := CheckTarget(u.Host); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	// Tie the timeout to the response body lifetime.
	resp.Body = &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

var schemePrefix = regexp.MustCompile(`^https?://`)

// NormalizeDomain strips any scheme and trailing slash from user input and
// returns the cleaned domain plus the https URL the analysis will target.
func NormalizeDomain(domain string) (string, string) {
	d := schemePrefix.ReplaceAllString(strings.TrimSpace(domain), "")
	d = strings.TrimSuffix(d, "/")
	return d, "https://" + d
}
