package publish

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"codereel/history"
	"codereel/types"
)

// Renderer produces the final media file for a request.
type Renderer interface {
	Render(ctx context.Context, req types.GenerationRequest, stem string) (string, error)
}

// LessonSource creates fresh lesson material.
type LessonSource interface {
	Generate(ctx context.Context, seed string) *types.ContentRecord
}

// VideoUploader pushes a finished file to the channel.
type VideoUploader interface {
	UploadVideo(videoPath string, meta Metadata) (string, error)
}

// Archiver copies finished videos to long-term storage.
type Archiver interface {
	Archive(ctx context.Context, videoPath string) (string, error)
}

// Result summarizes one generate, render and upload flow. Upload
// problems are reported here rather than failing the flow, the video
// stays on disk either way.
type Result struct {
	Success     bool                 `json:"success"`
	VideoPath   string               `json:"video_path,omitempty"`
	Uploaded    bool                 `json:"uploaded"`
	YouTubeID   string               `json:"youtube_id,omitempty"`
	UploadError string               `json:"upload_error,omitempty"`
	Error       string               `json:"error,omitempty"`
	Record      *types.ContentRecord `json:"record,omitempty"`
}

// Publisher runs the full flow. A nil uploader or autoUpload false
// leaves finished videos local.
type Publisher struct {
	renderer   Renderer
	lessons    LessonSource
	store      history.Store
	uploader   VideoUploader
	archiver   Archiver
	autoUpload bool
	dailyLimit int
}

func NewPublisher(renderer Renderer, lessons LessonSource, store history.Store, uploader VideoUploader, autoUpload bool, dailyLimit int) *Publisher {
	return &Publisher{
		renderer:   renderer,
		lessons:    lessons,
		store:      store,
		uploader:   uploader,
		autoUpload: autoUpload,
		dailyLimit: dailyLimit,
	}
}

// CanUpload reports whether the publisher holds working credentials.
func (p *Publisher) CanUpload() bool {
	return p.uploader != nil
}

// WithArchiver adds long-term storage for finished videos. Archive
// problems are logged, never fatal.
func (p *Publisher) WithArchiver(a Archiver) *Publisher {
	p.archiver = a
	return p
}

// KeepLocal returns a view of the publisher that never uploads, for
// requests that ask to keep the finished video on disk.
func (p *Publisher) KeepLocal() *Publisher {
	if !p.autoUpload {
		return p
	}
	clone := *p
	clone.autoUpload = false
	return &clone
}

// PublishGenerated creates a fresh lesson and publishes it. seed
// optionally steers the topic.
func (p *Publisher) PublishGenerated(ctx context.Context, seed string) Result {
	rec := p.lessons.Generate(ctx, seed)
	return p.publish(ctx, rec.Request(), rec)
}

// PublishRequest publishes caller-supplied material as-is.
func (p *Publisher) PublishRequest(ctx context.Context, req types.GenerationRequest) Result {
	return p.publish(ctx, req, recordFromRequest(req))
}

func (p *Publisher) publish(ctx context.Context, req types.GenerationRequest, rec *types.ContentRecord) Result {
	stem := fmt.Sprintf("short_%s_%.8s", time.Now().Format("20060102_150405"), rec.ID)

	path, err := p.renderer.Render(ctx, req, stem)
	if err != nil {
		return Result{Error: err.Error(), Record: rec}
	}

	res := Result{Success: true, VideoPath: path, Record: rec}

	if err := p.store.Add(ctx, rec); err != nil {
		log.Printf("⚠️ Failed to record history: %v", err)
	}

	if p.archiver != nil {
		if loc, err := p.archiver.Archive(ctx, path); err != nil {
			log.Printf("⚠️ Archive failed: %v", err)
		} else {
			log.Printf("🗄 Archived to %s", loc)
		}
	}

	if p.uploader == nil || !p.autoUpload {
		return res
	}
	if !p.underDailyLimit(ctx) {
		log.Printf("🛑 Daily upload limit reached, keeping %s local", path)
		return res
	}

	id, err := p.uploader.UploadVideo(path, metadataFor(rec))
	if err != nil {
		res.UploadError = err.Error()
		log.Printf("⚠️ Upload failed, video kept at %s: %v", path, err)
		return res
	}

	res.Uploaded = true
	res.YouTubeID = id
	if err := p.store.MarkUploaded(ctx, rec.ID, id); err != nil {
		log.Printf("⚠️ Failed to mark record uploaded: %v", err)
	}
	return res
}

func (p *Publisher) underDailyLimit(ctx context.Context) bool {
	if p.dailyLimit <= 0 {
		return true
	}
	count, err := p.store.TodayUploadCount(ctx)
	if err != nil {
		log.Printf("⚠️ Could not read upload counter, allowing upload: %v", err)
		return true
	}
	return count < p.dailyLimit
}

// metadataFor builds the listing, with fallbacks for manual requests
// that carry no title of their own.
func metadataFor(rec *types.ContentRecord) Metadata {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = "Coding Tutorial: " + clip(rec.Question, 70)
	}
	title = clip(title, 100)

	description := strings.TrimSpace(rec.Description)
	if description == "" {
		description = fmt.Sprintf("%s\n\n📱 Follow for daily coding tutorials!\n#coding #programming #shorts", rec.Question)
	}

	tags := rec.Tags
	if len(tags) == 0 {
		tags = []string{"coding", "programming", "tutorial", "shorts"}
	}

	return Metadata{Title: title, Description: description, Tags: tags}
}

func recordFromRequest(req types.GenerationRequest) *types.ContentRecord {
	return &types.ContentRecord{
		ID:             uuid.NewString(),
		Question:       req.Question,
		Code:           req.Code,
		ExpectedOutput: req.ExpectedOutput,
		Title:          clip(req.Question, 80),
		Language:       req.TargetLanguageID,
		CreatedAt:      time.Now(),
	}
}

func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
