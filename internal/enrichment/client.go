package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client fetches outlet websites for enrichment
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new enrichment client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		userAgent: "Mozilla/5.0 (compatible; GlowdeskCRM/1.0)",
	}
}

// Get fetches a URL and returns a parsed document. URLs without a scheme are
// fetched over https.
func (c *Client) Get(ctx context.Context, url string) (*goquery.Document, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return doc, nil
}

// Fetch retrieves and parses an outlet website profile in one call
func (c *Client) Fetch(ctx context.Context, url string) (*Profile, error) {
	doc, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseProfile(doc), nil
}
