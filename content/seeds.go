package content

import (
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

const (
	seedWorkers    = 4
	extractTimeout = 30 * time.Second
	excerptLimit   = 280
)

// DefaultFeeds are developer news feeds mined for trending lesson themes.
var DefaultFeeds = []string{
	"https://dev.to/feed",
	"https://news.ycombinator.com/rss",
	"https://www.freecodecamp.org/news/rss/",
}

// FeedPreset is one named feed a flag or env value can select by key.
type FeedPreset struct {
	Name string
	URL  string
}

// FeedPresets maps friendly keys to developer feeds.
var FeedPresets = map[string]FeedPreset{
	"devto": {
		Name: "DEV Community",
		URL:  "https://dev.to/feed",
	},
	"hn": {
		Name: "Hacker News",
		URL:  "https://news.ycombinator.com/rss",
	},
	"fcc": {
		Name: "freeCodeCamp",
		URL:  "https://www.freecodecamp.org/news/rss/",
	},
	"lobsters": {
		Name: "Lobsters",
		URL:  "https://lobste.rs/rss",
	},
}

// ResolveFeeds expands a comma separated list of preset keys or URLs
// into feed URLs. Unknown entries pass through unchanged so direct
// URLs keep working, and an empty input selects DefaultFeeds.
func ResolveFeeds(input string) []string {
	if strings.TrimSpace(input) == "" {
		return DefaultFeeds
	}

	var feeds []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if preset, ok := FeedPresets[part]; ok {
			feeds = append(feeds, preset.URL)
			continue
		}
		feeds = append(feeds, part)
	}
	return feeds
}

// Trend is one candidate theme pulled from a feed.
type Trend struct {
	Title   string
	URL     string
	Excerpt string
}

// FetchTrends parses each feed and returns up to perFeed items from
// every one, enriched with a short article excerpt where readable.
// Feeds that fail to parse are skipped.
func FetchTrends(feeds []string, perFeed int) []Trend {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}

	parser := gofeed.NewParser()
	var trends []Trend
	for _, url := range feeds {
		feed, err := parser.ParseURL(url)
		if err != nil {
			log.Printf("⚠️ Skipping feed %s: %v", url, err)
			continue
		}

		count := min(perFeed, len(feed.Items))
		for i := 0; i < count; i++ {
			trends = append(trends, Trend{
				Title: strings.TrimSpace(feed.Items[i].Title),
				URL:   feed.Items[i].Link,
			})
		}
	}

	enrichTrends(trends)
	return trends
}

// enrichTrends extracts article excerpts with a small worker pool.
// Extraction failures just leave the excerpt empty.
func enrichTrends(trends []Trend) {
	var wg sync.WaitGroup
	jobs := make(chan int, len(trends))

	for w := 0; w < seedWorkers; w++ {
		go func() {
			for i := range jobs {
				if trends[i].URL != "" {
					if article, err := readability.FromURL(trends[i].URL, extractTimeout); err == nil {
						trends[i].Excerpt = clipExcerpt(article.Excerpt)
					}
				}
				wg.Done()
			}
		}()
	}

	for i := range trends {
		wg.Add(1)
		jobs <- i
	}
	wg.Wait()
	close(jobs)
}

func clipExcerpt(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit])
}

// SeedLine turns a random trend into one prompt line, or returns an
// empty string when there is nothing to seed with.
func SeedLine(trends []Trend) string {
	if len(trends) == 0 {
		return ""
	}

	t := trends[rand.Intn(len(trends))]
	if t.Excerpt != "" {
		return t.Title + " (" + t.Excerpt + ")"
	}
	return t.Title
}
