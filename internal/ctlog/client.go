// Package ctlog queries the crt.sh Certificate Transparency log service.
package ctlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/certsift/certsift/internal/engine"
)

const (
	defaultBaseURL = "https://crt.sh"
	defaultTimeout = 60 * time.Second
	maxBody        = 50 * 1024 * 1024 // 50MB; large orgs have huge cert histories

	// crt.sh sits behind bot filtering that rejects obvious script agents,
	// so the default identity mimics a desktop browser.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Client implements engine.RecordFetcher against crt.sh's JSON endpoint.
// A single GET per Fetch, no retries: callers needing resilience re-run
// the whole pipeline.
type Client struct {
	BaseURL    string        // defaults to https://crt.sh
	UserAgent  string        // defaults to a browser identity
	Timeout    time.Duration // defaults to 60s
	HTTPClient *http.Client  // defaults to http.DefaultClient
}

// Fetch queries the log for certificates matching domain and classifies
// the outcome. Network and parse failures never surface as errors; they
// are folded into the tagged status so the pipeline can take its
// no-results branch.
func (c *Client) Fetch(ctx context.Context, domain string) engine.FetchResult {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	agent := c.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	queryURL := fmt.Sprintf("%s/?q=%s&output=json", base, url.QueryEscape(domain))

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, queryURL, nil)
	if err != nil {
		return engine.FetchResult{Status: engine.FetchTransportError, Err: err}
	}
	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return engine.FetchResult{Status: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.FetchResult{
			Status: engine.FetchTransportError,
			Err:    fmt.Errorf("crt.sh returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return engine.FetchResult{Status: classify(err), Err: fmt.Errorf("reading crt.sh body: %w", err)}
	}

	// An empty or non-JSON 200 body means crt.sh had nothing for the
	// query; both are the empty outcome, not an error.
	var records []engine.CertificateRecord
	if len(body) == 0 {
		return engine.FetchResult{Status: engine.FetchEmpty}
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return engine.FetchResult{Status: engine.FetchEmpty}
	}
	if len(records) == 0 {
		return engine.FetchResult{Status: engine.FetchEmpty}
	}

	return engine.FetchResult{Status: engine.FetchOK, Records: records}
}

// classify separates the deadline-exceeded outcome from other transport
// failures.
func classify(err error) engine.FetchStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return engine.FetchTimeout
	}
	return engine.FetchTransportError
}
