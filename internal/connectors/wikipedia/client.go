// Package wikipedia fetches topic pages from the MediaWiki Action API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wikivec/wikivec/internal/core/domain"
)

const (
	// DefaultBaseURL is the English Wikipedia Action API endpoint.
	DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

	// DefaultUserAgent identifies this client. Wikipedia requires a
	// descriptive user agent for API traffic.
	DefaultUserAgent = "wikivec/1.0 (semantic search backend)"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Wikipedia client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal MediaWiki Action API client. It fetches page
// lead-section extracts and outgoing link titles.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new Wikipedia API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: NewRateLimiter(),
	}
}

// queryResponse is the subset of the Action API query response we use
// (formatversion=2).
type queryResponse struct {
	Continue struct {
		PLContinue string `json:"plcontinue"`
	} `json:"continue"`
	Query struct {
		Pages []struct {
			PageID  int64  `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
			Missing bool   `json:"missing"`
			Links   []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// PageExtract fetches the lead-section plain-text extract for a page.
// Returns domain.ErrPageMissing when the page does not exist.
func (c *Client) PageExtract(ctx context.Context, title string) (domain.Page, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"extracts"},
		"explaintext":   {"1"},
		"exintro":       {"1"},
		"redirects":     {"1"},
		"titles":        {title},
	}

	var resp queryResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return domain.Page{}, err
	}
	if len(resp.Query.Pages) == 0 {
		return domain.Page{}, fmt.Errorf("%q: %w", title, domain.ErrPageMissing)
	}

	page := resp.Query.Pages[0]
	if page.Missing {
		return domain.Page{}, fmt.Errorf("%q: %w", title, domain.ErrPageMissing)
	}

	return domain.Page{
		ID:      page.PageID,
		Title:   page.Title,
		Summary: page.Extract,
	}, nil
}

// PageLinks fetches the titles of a page's outgoing article links,
// following API continuation until exhausted.
func (c *Client) PageLinks(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"links"},
		"plnamespace":   {"0"},
		"pllimit":       {"max"},
		"redirects":     {"1"},
		"titles":        {title},
	}

	var titles []string
	for {
		var resp queryResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, err
		}
		for _, page := range resp.Query.Pages {
			for _, link := range page.Links {
				titles = append(titles, link.Title)
			}
		}
		if resp.Continue.PLContinue == "" {
			return titles, nil
		}
		params.Set("plcontinue", resp.Continue.PLContinue)
	}
}

// get performs a rate-limited API request and decodes the response.
func (c *Client) get(ctx context.Context, params url.Values, out *queryResponse) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("wikipedia API status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return fmt.Errorf("wikipedia API error %s: %s", out.Error.Code, out.Error.Info)
	}
	return nil
}
