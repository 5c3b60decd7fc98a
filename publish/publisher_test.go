package publish

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"codereel/history"
	"codereel/types"
)

type fakeRenderer struct {
	path  string
	err   error
	calls int
	stems []string
}

func (f *fakeRenderer) Render(ctx context.Context, req types.GenerationRequest, stem string) (string, error) {
	f.calls++
	f.stems = append(f.stems, stem)
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeUploader struct {
	id       string
	err      error
	calls    int
	lastMeta Metadata
}

func (f *fakeUploader) UploadVideo(videoPath string, meta Metadata) (string, error) {
	f.calls++
	f.lastMeta = meta
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

type fakeLessons struct {
	rec *types.ContentRecord
}

func (f *fakeLessons) Generate(ctx context.Context, seed string) *types.ContentRecord {
	clone := *f.rec
	return &clone
}

func lesson() *types.ContentRecord {
	return &types.ContentRecord{
		ID:             "11112222-3333-4444-5555-666677778888",
		Topic:          "Closures",
		Question:       "What does this closure print?",
		Code:           "const f = () => 1;\nconsole.log(f());",
		ExpectedOutput: "1",
		Title:          "Closures in 30 seconds",
		Description:    "desc #js",
		Tags:           []string{"javascript"},
		CreatedAt:      time.Now(),
	}
}

func TestPublishGeneratedUploadsAndMarks(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	renderer := &fakeRenderer{path: "/out/video.mp4"}
	uploader := &fakeUploader{id: "yt42"}

	p := NewPublisher(renderer, &fakeLessons{rec: lesson()}, store, uploader, true, 5)
	res := p.PublishGenerated(ctx, "")

	if !res.Success || !res.Uploaded {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.YouTubeID != "yt42" {
		t.Fatalf("youtube id %q", res.YouTubeID)
	}
	if uploader.lastMeta.Title != "Closures in 30 seconds" {
		t.Fatalf("upload metadata title %q", uploader.lastMeta.Title)
	}

	recent, _ := store.Recent(ctx, 1)
	if len(recent) != 1 || !recent[0].Uploaded || recent[0].YouTubeID != "yt42" {
		t.Fatalf("history not updated: %+v", recent)
	}
	if count, _ := store.TodayUploadCount(ctx); count != 1 {
		t.Fatalf("upload counter %d", count)
	}
}

func TestPublishUploadFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	uploader := &fakeUploader{err: errors.New("quota exceeded")}

	p := NewPublisher(&fakeRenderer{path: "/out/video.mp4"}, &fakeLessons{rec: lesson()}, store, uploader, true, 5)
	res := p.PublishGenerated(ctx, "")

	if !res.Success {
		t.Fatal("render succeeded, the result should too")
	}
	if res.Uploaded {
		t.Fatal("upload failed but result claims otherwise")
	}
	if !strings.Contains(res.UploadError, "quota") {
		t.Fatalf("upload error %q", res.UploadError)
	}

	recent, _ := store.Recent(ctx, 1)
	if len(recent) != 1 || recent[0].Uploaded {
		t.Fatalf("history wrong after failed upload: %+v", recent)
	}
}

func TestPublishRenderFailure(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	uploader := &fakeUploader{id: "yt"}

	p := NewPublisher(&fakeRenderer{err: errors.New("encoder missing")}, &fakeLessons{rec: lesson()}, store, uploader, true, 5)
	res := p.PublishGenerated(ctx, "")

	if res.Success {
		t.Fatal("render failed, result should not be a success")
	}
	if res.Error == "" {
		t.Fatal("error message missing")
	}
	if uploader.calls != 0 {
		t.Fatal("nothing should upload after a failed render")
	}
	if recent, _ := store.Recent(ctx, 5); len(recent) != 0 {
		t.Fatal("failed renders should not enter history")
	}
}

func TestPublishRespectsDailyLimit(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	uploader := &fakeUploader{id: "yt"}

	p := NewPublisher(&fakeRenderer{path: "/out/v.mp4"}, &fakeLessons{rec: lesson()}, store, uploader, true, 1)

	first := p.PublishGenerated(ctx, "")
	second := p.PublishGenerated(ctx, "")

	if !first.Uploaded {
		t.Fatal("first publish should upload")
	}
	if second.Uploaded {
		t.Fatal("second publish should hit the daily limit")
	}
	if !second.Success {
		t.Fatal("hitting the limit must not fail the render")
	}
	if uploader.calls != 1 {
		t.Fatalf("expected 1 upload call, got %d", uploader.calls)
	}
}

func TestPublishWithoutAutoUpload(t *testing.T) {
	ctx := context.Background()
	uploader := &fakeUploader{id: "yt"}

	p := NewPublisher(&fakeRenderer{path: "/out/v.mp4"}, &fakeLessons{rec: lesson()}, history.NewMemory(), uploader, false, 5)
	res := p.PublishGenerated(ctx, "")

	if !res.Success || res.Uploaded {
		t.Fatalf("unexpected result: %+v", res)
	}
	if uploader.calls != 0 {
		t.Fatal("auto upload disabled, nothing should upload")
	}
}

func TestPublishRequestRecordsHistory(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()

	p := NewPublisher(&fakeRenderer{path: "/out/v.mp4"}, nil, store, nil, false, 5)
	res := p.PublishRequest(ctx, types.GenerationRequest{
		Question:       "What does this print?",
		Code:           "print(2 + 2)",
		ExpectedOutput: "4",
	})

	if !res.Success {
		t.Fatalf("publish failed: %+v", res)
	}
	recent, _ := store.Recent(ctx, 1)
	if len(recent) != 1 || recent[0].Code != "print(2 + 2)" {
		t.Fatalf("history wrong: %+v", recent)
	}
	if recent[0].ID == "" {
		t.Fatal("manual records still need ids")
	}
}

func TestMetadataFallbacks(t *testing.T) {
	rec := &types.ContentRecord{Question: "What does this print?"}
	meta := metadataFor(rec)

	if !strings.HasPrefix(meta.Title, "Coding Tutorial:") {
		t.Fatalf("title %q", meta.Title)
	}
	if meta.Description == "" || len(meta.Tags) == 0 {
		t.Fatalf("fallback metadata incomplete: %+v", meta)
	}

	long := &types.ContentRecord{Title: strings.Repeat("x", 150)}
	if got := metadataFor(long); len(got.Title) > 100 {
		t.Fatalf("title not clipped: %d chars", len(got.Title))
	}
}

func TestKeepLocalSkipsUpload(t *testing.T) {
	ctx := context.Background()
	uploader := &fakeUploader{id: "yt-1"}
	store := history.NewMemory()
	pub := NewPublisher(&fakeRenderer{path: "/tmp/out.mp4"}, &fakeLessons{rec: lesson()}, store, uploader, true, 5)

	res := pub.KeepLocal().PublishGenerated(ctx, "")
	if !res.Success || res.Uploaded {
		t.Fatalf("expected a local-only success, got %+v", res)
	}
	if uploader.calls != 0 {
		t.Fatalf("uploader ran %d times", uploader.calls)
	}

	// The original publisher still uploads.
	if res := pub.PublishGenerated(ctx, ""); !res.Uploaded {
		t.Fatalf("expected the shared publisher to keep uploading, got %+v", res)
	}
}

type fakeArchiver struct {
	paths []string
	err   error
}

func (f *fakeArchiver) Archive(ctx context.Context, videoPath string) (string, error) {
	f.paths = append(f.paths, videoPath)
	if f.err != nil {
		return "", f.err
	}
	return "s3://clips/" + videoPath, nil
}

func TestPublishArchivesFinishedVideo(t *testing.T) {
	ctx := context.Background()
	archiver := &fakeArchiver{}
	pub := NewPublisher(&fakeRenderer{path: "/tmp/out.mp4"}, &fakeLessons{rec: lesson()}, history.NewMemory(), nil, false, 0).
		WithArchiver(archiver)

	res := pub.PublishGenerated(ctx, "")
	if !res.Success {
		t.Fatalf("publish failed: %+v", res)
	}
	if len(archiver.paths) != 1 || archiver.paths[0] != "/tmp/out.mp4" {
		t.Fatalf("archiver saw %v", archiver.paths)
	}
}

func TestPublishArchiveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	archiver := &fakeArchiver{err: errors.New("bucket gone")}
	pub := NewPublisher(&fakeRenderer{path: "/tmp/out.mp4"}, &fakeLessons{rec: lesson()}, history.NewMemory(), nil, false, 0).
		WithArchiver(archiver)

	if res := pub.PublishGenerated(ctx, ""); !res.Success {
		t.Fatalf("archive failure must not fail the publish: %+v", res)
	}
}
