// Package history persists generated lessons and their upload state.
package history

import (
	"context"
	"log"
	"time"

	"codereel/config"
	"codereel/types"
)

// Store is the lesson history the generator, scheduler and API share.
// Implementations keep a bounded window of recent records, newest first,
// plus a small config KV used for credentials such as OAuth tokens.
type Store interface {
	Add(ctx context.Context, rec *types.ContentRecord) error
	Recent(ctx context.Context, limit int) ([]types.ContentRecord, error)
	RecentTopics(ctx context.Context, limit int) ([]string, error)
	MarkUploaded(ctx context.Context, id, youtubeID string) error
	TodayUploadCount(ctx context.Context) (int, error)
	LastUploadAt(ctx context.Context) (time.Time, error)
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	Close() error
}

// NewStore connects to Redis when configured, falling back to the
// in-memory store so a missing Redis never blocks rendering.
func NewStore(s config.Settings) Store {
	if s.RedisAddr == "" {
		log.Printf("💾 No Redis configured, keeping history in memory")
		return NewMemory()
	}

	store, err := NewRedis(s.RedisAddr, s.RedisPass, s.RedisDB)
	if err != nil {
		log.Printf("⚠️ %v, keeping history in memory", err)
		return NewMemory()
	}

	log.Printf("💾 Lesson history backed by Redis at %s", s.RedisAddr)
	return store
}
