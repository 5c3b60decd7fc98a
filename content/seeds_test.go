package content

import (
	"strings"
	"testing"
)

func TestResolveFeeds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty selects defaults",
			input: "",
			want:  DefaultFeeds,
		},
		{
			name:  "preset keys expand",
			input: "hn,devto",
			want: []string{
				"https://news.ycombinator.com/rss",
				"https://dev.to/feed",
			},
		},
		{
			name:  "direct URLs pass through",
			input: "https://example.com/rss",
			want:  []string{"https://example.com/rss"},
		},
		{
			name:  "mixed input with spaces",
			input: " fcc , https://example.com/rss ,",
			want: []string{
				"https://www.freecodecamp.org/news/rss/",
				"https://example.com/rss",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFeeds(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d feeds, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("feed %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSeedLine(t *testing.T) {
	if line := SeedLine(nil); line != "" {
		t.Fatalf("empty trends should seed nothing, got %q", line)
	}

	withExcerpt := []Trend{{Title: "Generics in practice", Excerpt: "A tour of type parameters"}}
	if line := SeedLine(withExcerpt); line != "Generics in practice (A tour of type parameters)" {
		t.Fatalf("unexpected seed line %q", line)
	}

	bare := []Trend{{Title: "Slices header internals"}}
	if line := SeedLine(bare); line != "Slices header internals" {
		t.Fatalf("unexpected seed line %q", line)
	}
}

func TestClipExcerpt(t *testing.T) {
	long := strings.Repeat("go ", 200)
	clipped := clipExcerpt(long)
	if len([]rune(clipped)) != excerptLimit {
		t.Fatalf("clipped length = %d, want %d", len([]rune(clipped)), excerptLimit)
	}

	if got := clipExcerpt("  short  "); got != "short" {
		t.Fatalf("clipExcerpt should trim, got %q", got)
	}
}
