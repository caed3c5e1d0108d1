package fetch

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/models"
	"github.com/mmcdole/gofeed"
)

const userAgent = "rss-2-podcast-note/1.0"

type Fetcher struct {
	parser *gofeed.Parser
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		parser: gofeed.NewParser(),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch retrieves and parses a feed URL. Failures are logged and yield an
// empty slice so a bad feed never aborts the run.
func (f *Fetcher) Fetch(ctx context.Context, url string) []models.Entry {
	feed, err := f.parseFeed(ctx, url)
	if err != nil {
		log.Printf("Error fetching RSS feed from %s: %v", url, err)
		return nil
	}

	entries := make([]models.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, models.Entry{
			Title:       item.Title,
			Link:        item.Link,
			Summary:     item.Description,
			Content:     item.Content,
			Published:   item.Published,
			PublishedAt: item.PublishedParsed,
			Updated:     item.Updated,
			UpdatedAt:   item.UpdatedParsed,
		})
	}

	return entries
}

func (f *Fetcher) parseFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, gofeed.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return f.parser.Parse(resp.Body)
}
