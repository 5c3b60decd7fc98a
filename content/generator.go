package content

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/google/uuid"

	"codereel/themes"
	"codereel/types"
)

const (
	generateAttempts    = 3
	similarityThreshold = 0.85
	recentTopicWindow   = 25
)

// TopicSource lists recently generated topics so new lessons do not
// repeat them.
type TopicSource interface {
	RecentTopics(ctx context.Context, limit int) ([]string, error)
}

// chatClient is the one call the generator needs from an AI backend.
type chatClient interface {
	chat(ctx context.Context, prompt string) (string, error)
}

// Generator creates lesson records, rotating through the language
// catalog and retrying with a different language when the model
// produces a topic too close to a recent one.
type Generator struct {
	chat   chatClient
	topics TopicSource
	model  string
}

// NewGenerator wires a generator to the Cohere chat API. An empty API
// key leaves the backend nil and every call falls back to the built-in
// lesson catalog.
func NewGenerator(apiKey, model string, topics TopicSource) *Generator {
	g := &Generator{topics: topics, model: model}
	if g.model == "" {
		g.model = "command-r-plus"
	}

	if apiKey != "" {
		// Force HTTP/1.1, the Cohere endpoint intermittently resets
		// HTTP/2 streams on long generations.
		httpClient := &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
				ForceAttemptHTTP2: false,
			},
		}
		g.chat = &cohereChat{
			client: cohereclient.NewClient(
				cohereclient.WithToken(apiKey),
				cohereclient.WithHTTPClient(httpClient),
			),
			model: g.model,
		}
	}
	return g
}

// Generate produces one fresh lesson. seed optionally names a trending
// theme to steer the prompt. Generation failures never bubble up, the
// built-in catalog covers them.
func (g *Generator) Generate(ctx context.Context, seed string) *types.ContentRecord {
	if g.chat == nil {
		log.Printf("⚠️ No AI backend configured, using a built-in lesson")
		return g.mockLesson()
	}

	recent := g.recentTopics(ctx)
	start := rand.Intn(len(themes.Languages))

	for attempt := 0; attempt < generateAttempts; attempt++ {
		lang := themes.Languages[(start+attempt)%len(themes.Languages)]

		raw, err := g.chat.chat(ctx, buildPrompt(lang, seed, recent))
		if err != nil {
			log.Printf("⚠️ Lesson generation attempt %d failed: %v", attempt+1, err)
			continue
		}

		rec, err := parseRecord(raw)
		if err != nil {
			log.Printf("⚠️ Lesson generation attempt %d returned bad JSON: %v", attempt+1, err)
			continue
		}
		rec.Language = lang.ID

		if dupe, score := mostSimilar(rec.Topic, recent); score > similarityThreshold {
			log.Printf("🔁 Topic %q too close to recent %q (%.2f), rotating language", rec.Topic, dupe, score)
			continue
		}

		rec.ID = uuid.NewString()
		rec.CreatedAt = time.Now()
		log.Printf("💡 Generated %s lesson: %s", lang.Display, rec.Topic)
		return rec
	}

	log.Printf("⚠️ All generation attempts failed, using a built-in lesson")
	return g.mockLesson()
}

func (g *Generator) recentTopics(ctx context.Context) []string {
	if g.topics == nil {
		return nil
	}
	topics, err := g.topics.RecentTopics(ctx, recentTopicWindow)
	if err != nil {
		log.Printf("⚠️ Could not load recent topics: %v", err)
		return nil
	}
	return topics
}

func (g *Generator) mockLesson() *types.ContentRecord {
	rec := mockLessons[rand.Intn(len(mockLessons))]
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	return &rec
}

// mostSimilar returns the closest recent topic and its score.
func mostSimilar(topic string, recent []string) (string, float64) {
	best := ""
	bestScore := 0.0
	for _, r := range recent {
		if score := SimilarityRatio(topic, r); score > bestScore {
			best, bestScore = r, score
		}
	}
	return best, bestScore
}

func buildPrompt(lang themes.Language, seed string, recent []string) string {
	var b strings.Builder
	b.WriteString("You write 30 second coding tutorial shorts.\n")
	fmt.Fprintf(&b, "Create one %s lesson as a JSON object with exactly these fields:\n", lang.Display)
	b.WriteString(`{"topic": "", "question": "", "code": "", "expected_output": "", "title": "", "description": "", "tags": []}` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- question asks what the code prints, at most 12 words\n")
	fmt.Fprintf(&b, "- code is valid %s, at most 10 short lines, and prints something\n", lang.Display)
	b.WriteString("- expected_output is exactly what running the code prints\n")
	b.WriteString("- title is a catchy YouTube Shorts title under 90 characters\n")
	b.WriteString("- description is under 300 characters and ends with 3 hashtags\n")
	if len(recent) > 0 {
		fmt.Fprintf(&b, "Avoid topics similar to: %s\n", strings.Join(recent, "; "))
	}
	if seed != "" {
		fmt.Fprintf(&b, "Base the lesson on this trending theme: %s\n", seed)
	}
	b.WriteString("Respond with only the JSON object.")
	return b.String()
}

// parseRecord extracts the lesson JSON from a model reply, tolerating
// markdown fences and prose around the object.
func parseRecord(raw string) (*types.ContentRecord, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in reply")
	}

	var parsed struct {
		Topic          string   `json:"topic"`
		Question       string   `json:"question"`
		Code           string   `json:"code"`
		ExpectedOutput string   `json:"expected_output"`
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		Tags           []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse lesson JSON: %w", err)
	}

	if parsed.Question == "" || parsed.Code == "" {
		return nil, errors.New("lesson is missing a question or code")
	}
	if parsed.Topic == "" {
		parsed.Topic = parsed.Title
	}
	if parsed.Title == "" {
		parsed.Title = parsed.Topic
	}
	if len(parsed.Tags) == 0 {
		parsed.Tags = []string{"coding", "programming", "shorts"}
	}

	return &types.ContentRecord{
		Topic:          parsed.Topic,
		Question:       parsed.Question,
		Code:           parsed.Code,
		ExpectedOutput: parsed.ExpectedOutput,
		Title:          parsed.Title,
		Description:    parsed.Description,
		Tags:           parsed.Tags,
	}, nil
}

// cohereChat adapts the Cohere v2 chat API to the chatClient seam.
type cohereChat struct {
	client *cohereclient.Client
	model  string
}

func (c *cohereChat) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.V2.Chat(ctx, &cohere.V2ChatRequest{
		Model: c.model,
		Messages: cohere.ChatMessages{
			{
				Role: "user",
				User: &cohere.UserMessage{Content: &cohere.UserMessageContent{
					String: prompt,
				}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Message == nil {
		return "", errors.New("cohere chat returned empty response")
	}

	var sb strings.Builder
	for _, item := range resp.Message.Content {
		if item != nil && item.Text != nil {
			sb.WriteString(item.Text.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("cohere chat returned no text content")
	}
	return sb.String(), nil
}

// mockLessons keeps unattended generation alive when no AI backend is
// reachable. Each has verified output.
var mockLessons = []types.ContentRecord{
	{
		Topic:          "Array Reduce",
		Question:       "What does this reduce call print?",
		Code:           "const nums = [1, 2, 3, 4];\nconst sum = nums.reduce(\n  (acc, n) => acc + n, 0\n);\nconsole.log(sum);",
		ExpectedOutput: "10",
		Title:          "JavaScript reduce() in 30 seconds!",
		Description:    "Sum an array with one line of reduce. #javascript #coding #shorts",
		Tags:           []string{"javascript", "coding", "shorts"},
		Language:       "javascript",
	},
	{
		Topic:          "List Comprehension",
		Question:       "What does this list comprehension print?",
		Code:           "squares = [n * n for n in range(1, 5)]\nprint(squares)",
		ExpectedOutput: "[1, 4, 9, 16]",
		Title:          "Python list comprehensions are magic",
		Description:    "Build a list of squares in one line. #python #coding #shorts",
		Tags:           []string{"python", "coding", "shorts"},
		Language:       "python",
	},
	{
		Topic:          "Slice Append",
		Question:       "What does this Go program print?",
		Code:           "nums := []int{1, 2}\nnums = append(nums, 3)\nfmt.Println(nums)",
		ExpectedOutput: "[1 2 3]",
		Title:          "How Go slices really grow",
		Description:    "append() returns a new slice header. #golang #coding #shorts",
		Tags:           []string{"golang", "coding", "shorts"},
		Language:       "go",
	},
}
