package news

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/mmcdole/gofeed"
)

type Collector struct {
	sources      []Source
	maxPerSource int
	http         *http.Client
	parser       *gofeed.Parser
	logger       *log.Logger
}

func NewCollector(sources []Source, maxPerSource int, httpClient *http.Client, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}

	return &Collector{
		sources:      sources,
		maxPerSource: maxPerSource,
		http:         httpClient,
		parser:       gofeed.NewParser(),
		logger:       logger,
	}
}

// Collect fetches every configured source in order and flattens the first
// maxPerSource entries of each into a single list. A source that fails to
// fetch or parse is logged and skipped; the remaining sources still
// contribute. No retries, no deduplication across sources.
func (c *Collector) Collect(ctx context.Context) []Item {
	var all []Item

	for _, src := range c.sources {
		feed, err := c.fetch(ctx, src.URL)
		if err != nil {
			c.logger.Printf("feed %s: collection failed: %v", src.Name, err)
			continue
		}

		for i, entry := range feed.Items {
			if i >= c.maxPerSource {
				break
			}
			all = append(all, Item{
				Source:  src.Name,
				Title:   entry.Title,
				Link:    entry.Link,
				Summary: entrySummary(entry),
			})
		}
	}

	return all
}

func (c *Collector) fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return c.parser.Parse(resp.Body)
}

// entrySummary prefers the feed's summary/description and falls back to the
// full content element; empty string when neither is present.
func entrySummary(entry *gofeed.Item) string {
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}
