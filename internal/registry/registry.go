package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/models"
)

type SortMode int

const (
	SortFileOrder SortMode = iota
	SortNameAsc
	SortNameDesc
)

// DefaultFeeds is used when the feeds file is missing or unreadable.
var DefaultFeeds = []models.Feed{
	{Name: "Stacker News", URL: "https://stacker.news/rss"},
	{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
	{Name: "Bitcoin Magazine", URL: "https://bitcoinmagazine.com/.rss/full/"},
}

// Load reads a JSON object mapping feed name to URL. Any failure falls back
// to DefaultFeeds with a warning; a feeds-file problem never aborts a run.
func Load(path string) []models.Feed {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: RSS feeds file %s not found. Using defaults.", path)
		return defaults()
	}

	feeds, err := parseFeeds(data)
	if err != nil {
		log.Printf("Error loading RSS feeds from %s: %v", path, err)
		return defaults()
	}
	if len(feeds) == 0 {
		log.Printf("Warning: RSS feeds file %s is empty. Using defaults.", path)
		return defaults()
	}

	return feeds
}

// parseFeeds decodes the object token by token so the file's key order
// survives; a plain map would shuffle it and break file-order sorting.
func parseFeeds(data []byte) ([]models.Feed, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("feeds file must be a JSON object")
	}

	var feeds []models.Feed
	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name := keyTok.(string)

		var url string
		if err := dec.Decode(&url); err != nil {
			return nil, fmt.Errorf("feed %q: %w", name, err)
		}

		if seen[name] {
			continue
		}
		seen[name] = true
		feeds = append(feeds, models.Feed{Name: name, URL: url})
	}

	return feeds, nil
}

func Sort(feeds []models.Feed, mode SortMode) []models.Feed {
	sorted := make([]models.Feed, len(feeds))
	copy(sorted, feeds)

	switch mode {
	case SortNameAsc:
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	case SortNameDesc:
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name > sorted[j].Name })
	}

	return sorted
}

func defaults() []models.Feed {
	feeds := make([]models.Feed, len(DefaultFeeds))
	copy(feeds, DefaultFeeds)
	return feeds
}
