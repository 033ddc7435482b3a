package wordpress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wpscanFixture(t *testing.T, handler http.HandlerFunc) *WPScanClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &WPScanClient{
		token:      "test-token",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestWPScanValidate(t *testing.T) {
	var gotAuth string
	client := wpscanFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/plugins/woocommerce":
			w.Write([]byte(`{"woocommerce":{}}`))
		case "/plugins/not-a-plugin":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	ok, err := client.Validate(context.Background(), "woocommerce")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Token token=test-token", gotAuth)

	ok, err = client.Validate(context.Background(), "not-a-plugin")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = client.Validate(context.Background(), "rate-limited")
	assert.Error(t, err)
}
