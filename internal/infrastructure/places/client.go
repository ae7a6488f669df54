package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saunafinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// ClientConfig tunes the Places client. Zero values fall back to defaults.
type ClientConfig struct {
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	PageDelay         time.Duration
	MaxResultCount    int
	MaxPages          int
}

// Client handles communication with the Google Places API (v1)
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	rateLimiter    *rate.Limiter
	pageDelay      time.Duration
	maxResultCount int
	maxPages       int
	debug          bool
}

// NewClient creates a new Places API client
func NewClient(apiKey, baseURL string, cfg ClientConfig) *Client {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PageDelay < 0 {
		cfg.PageDelay = 0
	}
	if cfg.MaxResultCount <= 0 || cfg.MaxResultCount > 20 {
		cfg.MaxResultCount = 20
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		rateLimiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		pageDelay:      cfg.PageDelay,
		maxResultCount: cfg.MaxResultCount,
		maxPages:       cfg.MaxPages,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// retryable reports whether a status code is worth another attempt
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// do sends the request built by newReq with rate limiting and retries.
// newReq is called once per attempt so request bodies can be replayed.
func (c *Client) do(ctx context.Context, label string, newReq func() (*http.Request, error)) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[PLACES] Rate limiter error: %v", err)
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := newReq()
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "SaunaFinder/1.0")
		req.Header.Set("X-Goog-Api-Key", c.apiKey)

		if c.debug {
			log.Printf("[PLACES] %s %s %s (attempt %d)", label, req.Method, req.URL.Path, attempt)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[PLACES] Request error (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrPlacesAPIFailure, err)
			if !c.sleep(ctx, exponentialBackoff(attempt)) {
				return nil, ctx.Err()
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		log.Printf("[PLACES] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, apiMessage(body))
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrPlaceNotFound
		}
		lastErr = fmt.Errorf("%w: status %d: %s", domain.ErrPlacesAPIFailure, resp.StatusCode, apiMessage(body))
		if !retryable(resp.StatusCode) {
			return nil, lastErr
		}
		if !c.sleep(ctx, exponentialBackoff(attempt)) {
			return nil, ctx.Err()
		}
	}

	log.Printf("[PLACES] All retries failed for %s", label)
	return nil, lastErr
}

// SearchAll runs a text search biased to the city's circle and follows
// nextPageToken until the provider stops returning one.
func (c *Client) SearchAll(ctx context.Context, query string, city domain.City) ([]domain.RawCandidate, error) {
	log.Printf("[PLACES] SearchAll called with query: %q (%s)", query, city.Slug)

	endpoint := c.baseURL + "/v1/places:searchText"
	mask := searchFieldMask()

	var all []domain.RawCandidate
	pageToken := ""
	for page := 1; page <= c.maxPages; page++ {
		payload, err := json.Marshal(searchTextRequest{
			TextQuery: query,
			LocationBias: locationBias{Circle: circle{
				Center: latLng{Latitude: city.Center.Lat, Longitude: city.Center.Lng},
				Radius: city.RadiusMeters,
			}},
			MaxResultCount: c.maxResultCount,
			PageToken:      pageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}

		body, err := c.do(ctx, "searchText", func() (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Goog-FieldMask", mask)
			return req, nil
		})
		if err != nil {
			return nil, err
		}

		var resp searchTextResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			log.Printf("[PLACES] JSON decode error: %v", err)
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrPlacesAPIFailure, err)
		}

		all = append(all, MapToCandidates(resp.Places)...)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
		if !c.sleep(ctx, c.pageDelay) {
			return nil, ctx.Err()
		}
	}

	log.Printf("[PLACES] Found %d places for query: %q", len(all), query)
	if all == nil {
		all = []domain.RawCandidate{}
	}
	return all, nil
}

// GetPlace fetches a single place. fields limits the response; none means every search field.
func (c *Client) GetPlace(ctx context.Context, placeID string, fields ...string) (*domain.RawCandidate, error) {
	if placeID == "" {
		return nil, fmt.Errorf("%w: empty place id", domain.ErrInvalidRequest)
	}
	if len(fields) == 0 {
		fields = searchFields
	}
	if !contains(fields, "id") {
		fields = append([]string{"id"}, fields...)
	}
	mask := strings.Join(fields, ",")
	endpoint := fmt.Sprintf("%s/v1/places/%s", c.baseURL, url.PathEscape(placeID))

	body, err := c.do(ctx, "getPlace", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Goog-FieldMask", mask)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var place Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrPlacesAPIFailure, err)
	}

	candidate := MapToCandidate(&place)
	return &candidate, nil
}

// DownloadPhoto fetches the image bytes for a photo resource name
func (c *Client) DownloadPhoto(ctx context.Context, photo domain.PhotoRef, maxHeightPx int) ([]byte, error) {
	if photo.Name == "" {
		return nil, fmt.Errorf("%w: empty photo name", domain.ErrInvalidRequest)
	}
	if maxHeightPx <= 0 {
		maxHeightPx = 600
	}
	params := url.Values{}
	params.Add("maxHeightPx", strconv.Itoa(maxHeightPx))
	reqURL := fmt.Sprintf("%s/v1/%s/media?%s", c.baseURL, photo.Name, params.Encode())

	data, err := c.do(ctx, "photoMedia", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty photo body for %s", domain.ErrPlacesAPIFailure, photo.Name)
	}
	return data, nil
}

// sleep waits for d or until ctx is done; it reports false on cancellation
func (c *Client) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// apiMessage extracts the provider's error message, falling back to the raw body
func apiMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if len(body) > 200 {
		return string(body[:200])
	}
	return string(body)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
