package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"codereel/types"
)

func record(id, topic string) *types.ContentRecord {
	return &types.ContentRecord{
		ID:        id,
		Topic:     topic,
		Question:  "What does this print?",
		Code:      "print(1)",
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for i := 1; i <= 3; i++ {
		if err := store.Add(ctx, record(fmt.Sprintf("id%d", i), fmt.Sprintf("topic %d", i))); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "id3" || got[1].ID != "id2" {
		t.Fatalf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestMemoryStoreCapsHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for i := 0; i < historyCap+10; i++ {
		if err := store.Add(ctx, record(fmt.Sprintf("id%d", i), "t")); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	got, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(got) != historyCap {
		t.Fatalf("expected history capped at %d, got %d", historyCap, len(got))
	}
}

func TestMemoryStoreRecentTopicsSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Add(ctx, record("a", "Closures"))
	store.Add(ctx, record("b", ""))
	store.Add(ctx, record("c", "Recursion"))

	topics, err := store.RecentTopics(ctx, 10)
	if err != nil {
		t.Fatalf("recent topics failed: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %v", topics)
	}
	if topics[0] != "Recursion" || topics[1] != "Closures" {
		t.Fatalf("wrong topics: %v", topics)
	}
}

func TestMemoryStoreMarkUploaded(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	store.Add(ctx, record("abc", "Closures"))

	if err := store.MarkUploaded(ctx, "abc", "yt123"); err != nil {
		t.Fatalf("mark uploaded failed: %v", err)
	}

	got, _ := store.Recent(ctx, 1)
	if !got[0].Uploaded || got[0].YouTubeID != "yt123" {
		t.Fatalf("record not updated: %+v", got[0])
	}

	count, err := store.TodayUploadCount(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 upload today, got %d", count)
	}

	last, err := store.LastUploadAt(ctx)
	if err != nil {
		t.Fatalf("last upload failed: %v", err)
	}
	if last.IsZero() {
		t.Fatal("last upload time was not stamped")
	}
}

func TestMemoryStoreMarkUploadedUnknownID(t *testing.T) {
	store := NewMemory()
	if err := store.MarkUploaded(context.Background(), "nope", "yt"); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestMemoryStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if got, _ := store.Recent(ctx, 5); len(got) != 0 {
		t.Fatalf("expected empty history, got %d", len(got))
	}
	if count, _ := store.TodayUploadCount(ctx); count != 0 {
		t.Fatalf("expected 0 uploads, got %d", count)
	}
	if last, _ := store.LastUploadAt(ctx); !last.IsZero() {
		t.Fatal("expected zero last upload time")
	}
}

func TestMemoryStoreConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if got, err := store.GetConfig(ctx, "youtube_refresh_token"); err != nil || got != "" {
		t.Fatalf("unset key: got %q, %v", got, err)
	}
	if err := store.SetConfig(ctx, "youtube_refresh_token", "tok-123"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := store.GetConfig(ctx, "youtube_refresh_token"); got != "tok-123" {
		t.Fatalf("got %q, want tok-123", got)
	}
}
