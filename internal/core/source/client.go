// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/GYCODES/manga-translate/internal/platform/constants"
	"github.com/GYCODES/manga-translate/internal/platform/metrics"
)

// clientTimeout bounds a single upstream round trip. Cascade steps are
// sequential, so a slow provider must fail fast enough for fallbacks to run
// inside the global request deadline.
const clientTimeout = 20 * time.Second

// client is the throttled HTTP helper shared by all providers.
//
// Each provider owns one client with its own token bucket, so a burst of
// resolutions cannot hammer an upstream host past the configured rate.
type client struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// newClient builds a provider HTTP helper for the given host and rate.
func newClient(name, baseURL string, rps float64) *client {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: clientTimeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// endpoint joins the provider base URL with a path and encoded query.
func (c *client) endpoint(path string, query url.Values) string {
	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

// getJSON performs a throttled GET against rawURL and decodes the JSON
// response into target.
func (c *client) getJSON(ctx context.Context, operation, rawURL string, target any) error {
	response, err := c.get(ctx, operation, rawURL, "application/json")
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("source: %s %s: decode response: %w", c.name, operation, err)
	}

	return nil
}

// getDocument performs a throttled GET against rawURL and parses the HTML
// response for scraping.
func (c *client) getDocument(ctx context.Context, operation, rawURL string) (*goquery.Document, error) {
	response, err := c.get(ctx, operation, rawURL, "text/html")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, fmt.Errorf("source: %s %s: parse html: %w", c.name, operation, err)
	}

	return document, nil
}

// get waits for rate-limit clearance, performs the request, and enforces the
// status-code policy: anything >= 400 is a provider error.
func (c *client) get(ctx context.Context, operation, rawURL, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("source: %s %s: %w", c.name, operation, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("source: %s %s: build request: %w", c.name, operation, err)
	}
	request.Header.Set("User-Agent", constants.OutboundUserAgent)
	request.Header.Set("Accept", accept)

	startTime := time.Now()
	response, err := c.http.Do(request)
	elapsed := time.Since(startTime).Seconds()

	if err != nil {
		metrics.RecordProviderRequest(c.name, operation, "error", elapsed)
		return nil, fmt.Errorf("source: %s %s: %w", c.name, operation, err)
	}

	if response.StatusCode >= 400 {
		_ = response.Body.Close()
		metrics.RecordProviderRequest(c.name, operation, fmt.Sprintf("http_%d", response.StatusCode), elapsed)
		return nil, fmt.Errorf("source: %s %s: unexpected status %d", c.name, operation, response.StatusCode)
	}

	metrics.RecordProviderRequest(c.name, operation, "ok", elapsed)
	return response, nil
}
