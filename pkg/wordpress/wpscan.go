package wordpress

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const wpscanBaseURL = "https://wpscan.com/api/v3"

// WPScanClient checks candidate slugs against the WPScan plugin database.
// The check is advisory enrichment only: it can mark a plugin as known, it
// never removes one.
type WPScanClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewWPScanClient(token string) *WPScanClient {
	return &WPScanClient{
		token:      token,
		baseURL:    wpscanBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Validate reports whether the slug exists in the plugin database.
func (c *WPScanClient) Validate(ctx context.Context, slug string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/plugins/"+slug, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Token token="+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("wpscan: unexpected status %d for %s", resp.StatusCode, slug)
	}
}
