package detect

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getstack/cmsdetect/pkg/fetch"
)

// reroutedAnalyzer wires an analyzer whose fetches all land on the TLS test
// server while request URLs keep their public-looking hosts. The detector
// targets https URLs and refuses loopback addresses, so tests cannot point
// it at srv.URL directly.
func reroutedAnalyzer(t *testing.T, srv *httptest.Server, opts ...fetch.Option) *Analyzer {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, u.Host)
		},
	}
	opts = append([]fetch.Option{fetch.WithHTTPClient(&http.Client{Transport: transport})}, opts...)

	analyzer, err := NewAnalyzer(Config{Client: fetch.NewClient(opts...)})
	require.NoError(t, err)
	return analyzer
}

func TestAnalyzeWordPressFromHeaders(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Generator", "WordPress 6.4")
		w.Write([]byte(`<html><head></head><body>welcome</body></html>`))
	}))
	defer srv.Close()

	res := reroutedAnalyzer(t, srv).Analyze(context.Background(), "example.com")
	require.Empty(t, res.Error)
	assert.Equal(t, "wordpress", res.CMSType)
	assert.Equal(t, "6.4", res.WordPressVersion)
	assert.Equal(t, "example.com", res.Domain)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAnalyzeWordPressFromContent(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head>
			<meta name="generator" content="WordPress 6.2.1">
			<link rel="stylesheet" href="/wp-content/themes/astra/style.css?ver=4.1.0">
			<script src="/wp-content/plugins/woocommerce/assets/js/frontend.min.js?ver=8.0.1"></script>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	res := reroutedAnalyzer(t, srv).Analyze(context.Background(), "shop.example.com")
	require.Empty(t, res.Error)
	assert.Equal(t, "wordpress", res.CMSType)
	assert.Equal(t, "6.2.1", res.WordPressVersion)
	assert.Equal(t, "astra", res.Theme)

	require.NotEmpty(t, res.Plugins)
	assert.Equal(t, "woocommerce", res.Plugins[0].Slug)
	assert.Equal(t, "8.0.1", res.Plugins[0].Version)
	assert.Equal(t, "1 detected", res.PluginCount)
}

func TestAnalyzeShopify(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopId", "12345")
		w.Write([]byte(`<html><head>
			<script src="https://cdn.shopify.com/s/files/1/0001/t.js"></script>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	res := reroutedAnalyzer(t, srv).Analyze(context.Background(), "store.example.com")
	require.Empty(t, res.Error)
	assert.Equal(t, "shopify", res.CMSType)
	assert.Empty(t, res.WordPressVersion)
	assert.Empty(t, res.Plugins)
	assert.Empty(t, res.Theme)
}

func TestAnalyzeUnknownPlatformStillReportsTechnologies(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<script src="/static/react.min.js"></script>
		</head><body data-reactroot=""></body></html>`))
	}))
	defer srv.Close()

	res := reroutedAnalyzer(t, srv).Analyze(context.Background(), "app.example.com")
	require.Empty(t, res.Error)
	assert.Empty(t, res.CMSType)
	assert.Contains(t, res.Technologies, "React")
}

func TestAnalyzeRejectsPrivateAddresses(t *testing.T) {
	analyzer, err := NewAnalyzer(Config{})
	require.NoError(t, err)

	for _, target := range []string{"127.0.0.1", "localhost", "http://192.168.1.10", "https://[::1]:8443"} {
		res := analyzer.Analyze(context.Background(), target)
		assert.Equal(t, msgPrivateIP, res.Error, target)
		assert.Empty(t, res.CMSType, target)
	}
}

func TestAnalyzeRejectsMalformedInput(t *testing.T) {
	analyzer, err := NewAnalyzer(Config{})
	require.NoError(t, err)

	res := analyzer.Analyze(context.Background(), "not a real domain")
	assert.Equal(t, msgInvalidDomain, res.Error)
	assert.Empty(t, res.CMSType)
}

func TestAnalyzeUnreachableHostYieldsErrorResult(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	analyzer := reroutedAnalyzer(t, srv, fetch.WithTimeouts(50*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond))
	res := analyzer.Analyze(context.Background(), "slow.example.com")
	assert.Equal(t, msgFetchFailed, res.Error)
	assert.NotEmpty(t, res.Details)
	assert.Empty(t, res.CMSType)
}

func TestAnalyzeDegradesWhenBodyFetchFails(t *testing.T) {
	var gets atomic.Int64
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Generator", "WordPress 6.3")
		if r.Method == http.MethodGet {
			gets.Add(1)
			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				conn.Close()
			}
		}
	}))
	defer srv.Close()

	res := reroutedAnalyzer(t, srv).Analyze(context.Background(), "flaky.example.com")
	require.Empty(t, res.Error)
	assert.Equal(t, "wordpress", res.CMSType)
	assert.Equal(t, "6.3", res.WordPressVersion)
	assert.Empty(t, res.Plugins)
	assert.Empty(t, res.Technologies)
	assert.Equal(t, int64(1), gets.Load())
}
