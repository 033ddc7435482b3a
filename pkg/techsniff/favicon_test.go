package techsniff

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getstack/cmsdetect/pkg/fetch"
)

func testClient(t *testing.T, srv *httptest.Server) *fetch.Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, u.Host)
		},
	}
	return fetch.NewClient(fetch.WithHTTPClient(&http.Client{Transport: transport}))
}

func TestFetchFaviconFromLinkTag(t *testing.T) {
	icon := []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/assets/site.ico" {
			w.Write(icon)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	body := `<html><head><link rel="icon" href="/assets/site.ico"></head></html>`
	fav := FetchFavicon(context.Background(), testClient(t, srv), "http://example.com", body)

	require.NotNil(t, fav)
	assert.Equal(t, "http://example.com/assets/site.ico", fav.URL)
	assert.Equal(t, MMH3Hash(icon), fav.Hash)
}

func TestFetchFaviconFallsBackToDefaultPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/favicon.ico" {
			w.Write([]byte("icon-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fav := FetchFavicon(context.Background(), testClient(t, srv), "http://example.com", "<html></html>")
	require.NotNil(t, fav)
	assert.Equal(t, "http://example.com/favicon.ico", fav.URL)
}

func TestFetchFaviconNilWhenUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	fav := FetchFavicon(context.Background(), testClient(t, srv), "http://example.com", "<html></html>")
	assert.Nil(t, fav)
}
