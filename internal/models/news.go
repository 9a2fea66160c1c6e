package models

import "time"

// NewsItem is a single headline assembled from an upstream feed. Not persisted.
type NewsItem struct {
	Title          string     `json:"title"`
	Link           string     `json:"link"`
	PubDate        *time.Time `json:"pubDate,omitempty"`
	ContentSnippet string     `json:"contentSnippet"`
	Source         string     `json:"source"`
	GUID           string     `json:"guid"`
}

// Feed is a parsed upstream feed.
type Feed struct {
	URL   string
	Title string
	Items []FeedItem
}

// FeedItem is the subset of a feed entry the aggregator consumes.
type FeedItem struct {
	Title       string
	Link        string
	GUID        string
	Published   *time.Time
	Description string
	Content     string
}
