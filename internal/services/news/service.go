// Package news aggregates market headlines from configured RSS/Atom feeds
package news

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/metrics"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Compile-time interface check
var _ interfaces.NewsService = (*Service)(nil)

const unknownSource = "Unknown Source"

// Service implements NewsService
type Service struct {
	fetcher interfaces.FeedFetcher
	feeds   []string
	limit   int
	timeout time.Duration
	logger  *common.Logger
}

// NewService creates a news service over the configured feeds
func NewService(fetcher interfaces.FeedFetcher, config common.NewsConfig, logger *common.Logger) *Service {
	limit := config.Limit
	if limit <= 0 {
		limit = 20
	}
	return &Service{
		fetcher: fetcher,
		feeds:   append([]string(nil), config.Feeds...),
		limit:   limit,
		timeout: config.GetTimeout(),
		logger:  logger,
	}
}

// Latest fetches every feed concurrently and returns the newest items across
// all of them. A single failing feed fails the whole call.
func (s *Service) Latest(ctx context.Context) ([]*models.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feeds, err := iter.MapErr(s.feeds, func(url *string) (*models.Feed, error) {
		return s.fetcher.Fetch(ctx, *url)
	})
	if err != nil {
		metrics.RecordNewsFetch(false)
		s.logger.Error().Err(err).Int("feeds", len(s.feeds)).Msg("News feed fetch failed")
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}
	metrics.RecordNewsFetch(true)

	items := make([]*models.NewsItem, 0)
	for _, feed := range feeds {
		source := sourceLabel(feed.Title)
		for _, it := range feed.Items {
			items = append(items, toNewsItem(it, source))
		}
	}

	// Stable so feed order breaks ties; undated items go last.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PubDate, items[j].PubDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if len(items) > s.limit {
		items = items[:s.limit]
	}

	s.logger.Debug().Int("items", len(items)).Int("feeds", len(feeds)).Msg("News aggregated")
	return items, nil
}

// sourceLabel maps a feed title to the display source.
func sourceLabel(title string) string {
	switch {
	case title == "":
		return unknownSource
	case strings.Contains(title, "Yahoo"):
		return "Yahoo Finance"
	case strings.Contains(title, "MarketWatch"):
		return "MarketWatch"
	default:
		return title
	}
}

func toNewsItem(it models.FeedItem, source string) *models.NewsItem {
	guid := it.GUID
	if guid == "" {
		guid = it.Link
	}
	body := it.Description
	if strings.TrimSpace(body) == "" {
		body = it.Content
	}
	var published *time.Time
	if it.Published != nil {
		t := it.Published.UTC()
		published = &t
	}
	return &models.NewsItem{
		Title:          it.Title,
		Link:           it.Link,
		PubDate:        published,
		ContentSnippet: plainText(body),
		Source:         source,
		GUID:           guid,
	}
}
