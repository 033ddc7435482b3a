package fetch

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rerouted returns a client whose transport dials the test server no matter
// which host the request names, so public-looking URLs can be exercised
// without touching the network.
func rerouted(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, u.Host)
		},
	}
	return NewClient(WithHTTPClient(&http.Client{Transport: transport}))
}

func TestGuardBlocksBeforeAnyNetworkCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	// srv.URL points at 127.0.0.1, which the guard must reject.
	client := NewClient()
	_, err := client.Head(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrPrivateAddress)

	_, _, err = client.Body(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrPrivateAddress)

	_, _, err = client.Probe(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrPrivateAddress)

	assert.Equal(t, int64(0), calls.Load())
}

func TestRequestsCarryUserAgent(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	client := rerouted(t, srv)
	_, err := client.Head(context.Background(), "http://example.com/")
	require.NoError(t, err)
	assert.Equal(t, UserAgent, gotUA.Load())
}

func TestBodyReturnsPageText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Generator", "WordPress 6.4")
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	client := rerouted(t, srv)
	body, resp, err := client.Body(context.Background(), "http://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "<html>hello</html>", body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "WordPress 6.4", resp.Header.Get("X-Generator"))
}

func TestProbeTimeoutIsEnforced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, u.Host)
		},
	}
	client := NewClient(
		WithHTTPClient(&http.Client{Transport: transport}),
		WithTimeouts(0, 0, 50*time.Millisecond),
	)

	_, _, err = client.Probe(context.Background(), "http://example.com/slow")
	assert.Error(t, err)
}

func TestNormalizeDomain(t *testing.T) {
	testcases := []struct {
		In         string
		WantDomain string
		WantURL    string
	}{
		{"example.com", "example.com", "https://example.com"},
		{"https://example.com", "example.com", "https://example.com"},
		{"http://example.com/", "example.com", "https://example.com"},
		{"  www.example.com  ", "www.example.com", "https://www.example.com"},
		{"example.com/blog", "example.com/blog", "https://example.com/blog"},
	}

	for _, tc := range testcases {
		domain, target := NormalizeDomain(tc.In)
		assert.Equal(t, tc.WantDomain, domain, tc.In)
		assert.Equal(t, tc.WantURL, target, tc.In)
	}
}
