package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codereel/themes"
)

type fakeChat struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeChat) chat(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no reply queued")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type fakeTopics struct {
	topics []string
}

func (f *fakeTopics) RecentTopics(ctx context.Context, limit int) ([]string, error) {
	return f.topics, nil
}

func lessonReply(topic string) string {
	return "Here is your lesson:\n```json\n" +
		`{"topic": "` + topic + `", "question": "What does this print?", "code": "print(1)", "expected_output": "1", "title": "Neat trick", "description": "desc #python", "tags": ["python"]}` +
		"\n```"
}

func TestGenerateParsesModelReply(t *testing.T) {
	g := &Generator{
		chat:   &fakeChat{replies: []string{lessonReply("Binary Search")}},
		topics: &fakeTopics{},
		model:  "command-r-plus",
	}

	rec := g.Generate(context.Background(), "")

	if rec.Topic != "Binary Search" {
		t.Fatalf("topic %q", rec.Topic)
	}
	if rec.Question == "" || rec.Code == "" {
		t.Fatal("question and code must survive parsing")
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatal("record identity was not filled in")
	}
	if themes.LanguageByID(rec.Language).ID != rec.Language {
		t.Fatalf("language %q is not in the catalog", rec.Language)
	}
}

func TestGenerateRotatesLanguageOnDuplicateTopic(t *testing.T) {
	chat := &fakeChat{replies: []string{
		lessonReply("Array Reduce Tricks"),
		lessonReply("Binary Search"),
	}}
	g := &Generator{
		chat:   chat,
		topics: &fakeTopics{topics: []string{"Array Reduce Tricks"}},
		model:  "command-r-plus",
	}

	rec := g.Generate(context.Background(), "")

	if len(chat.prompts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(chat.prompts))
	}
	if rec.Topic != "Binary Search" {
		t.Fatalf("expected the second, non-duplicate lesson, got %q", rec.Topic)
	}
}

func TestGenerateFallsBackToBuiltInLessons(t *testing.T) {
	cases := []struct {
		name string
		g    *Generator
	}{
		{"no backend", &Generator{}},
		{"backend always fails", &Generator{chat: &fakeChat{err: errors.New("boom")}}},
		{"backend returns garbage", &Generator{chat: &fakeChat{replies: []string{"nope", "nope", "nope"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.g.Generate(context.Background(), "")
			if rec == nil {
				t.Fatal("fallback must always produce a lesson")
			}
			found := false
			for _, mock := range mockLessons {
				if rec.Topic == mock.Topic {
					found = true
				}
			}
			if !found {
				t.Fatalf("unexpected fallback topic %q", rec.Topic)
			}
			if rec.ID == "" {
				t.Fatal("fallback lesson needs an id")
			}
		})
	}
}

func TestBuildPromptCarriesConstraints(t *testing.T) {
	lang := themes.LanguageByID("python")
	prompt := buildPrompt(lang, "async generators", []string{"Recursion", "Closures"})

	for _, want := range []string{"Python", "12 words", "Recursion; Closures", "async generators", "only the JSON"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt is missing %q:\n%s", want, prompt)
		}
	}
}

func TestParseRecord(t *testing.T) {
	t.Run("rejects prose without json", func(t *testing.T) {
		if _, err := parseRecord("I could not generate a lesson today."); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("rejects lessons without code", func(t *testing.T) {
		if _, err := parseRecord(`{"topic": "x", "question": "y", "code": ""}`); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("defaults topic and tags", func(t *testing.T) {
		rec, err := parseRecord(`{"question": "q", "code": "c", "title": "Nice Title"}`)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if rec.Topic != "Nice Title" {
			t.Fatalf("topic should default to the title, got %q", rec.Topic)
		}
		if len(rec.Tags) == 0 {
			t.Fatal("tags should receive defaults")
		}
	})
}
