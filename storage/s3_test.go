package storage

import (
	"context"
	"testing"

	"codereel/config"
)

func TestNewArchiverUnconfigured(t *testing.T) {
	a, err := NewArchiver(context.Background(), config.Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != nil {
		t.Fatal("expected archiving to be disabled without a bucket")
	}
}

func TestKeyAndLocation(t *testing.T) {
	a := &Archiver{bucket: "clips", prefix: "shorts/2026"}

	key := a.keyFor("/var/tmp/output/short_20260823_abc.mp4")
	if key != "shorts/2026/short_20260823_abc.mp4" {
		t.Fatalf("got key %q", key)
	}
	if loc := a.location(key); loc != "s3://clips/shorts/2026/short_20260823_abc.mp4" {
		t.Fatalf("got location %q", loc)
	}

	bare := &Archiver{bucket: "clips"}
	if key := bare.keyFor("out.mp4"); key != "out.mp4" {
		t.Fatalf("got key %q without prefix", key)
	}
}
