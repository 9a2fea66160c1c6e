// Package feeds fetches and parses RSS/Atom feeds
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second across all feeds
	DefaultUserAgent = "StockAI/1.0 (+news aggregator)"
)

// Client implements the FeedFetcher interface
type Client struct {
	parser  *gofeed.Parser
	logger  *common.Logger
	limiter *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit; zero or less disables limiting
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.parser.Client.Timeout = timeout
	}
}

// NewClient creates a new feed client
func NewClient(opts ...ClientOption) *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: DefaultTimeout}
	parser.UserAgent = DefaultUserAgent

	c := &Client{
		parser:  parser,
		logger:  common.NewSilentLogger(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch downloads and parses one feed.
func (c *Client) Fetch(ctx context.Context, url string) (*models.Feed, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.logger.Debug().Str("url", url).Msg("Fetching feed")

	feed, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", url, err)
	}

	out := &models.Feed{
		URL:   url,
		Title: strings.TrimSpace(feed.Title),
		Items: make([]models.FeedItem, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		out.Items = append(out.Items, models.FeedItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			GUID:        strings.TrimSpace(item.GUID),
			Published:   published,
			Description: item.Description,
			Content:     item.Content,
		})
	}

	return out, nil
}

// Compile-time check
var _ interfaces.FeedFetcher = (*Client)(nil)
