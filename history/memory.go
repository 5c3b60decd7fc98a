package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codereel/types"
)

// MemoryStore is the zero-dependency fallback. History disappears on
// restart, which is acceptable for single renders and local testing.
type MemoryStore struct {
	mu         sync.Mutex
	records    []types.ContentRecord // newest first
	uploads    map[string]int        // per-day counts
	conf       map[string]string
	lastUpload time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[string]int),
		conf:    make(map[string]string),
	}
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) Add(ctx context.Context, rec *types.ContentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append([]types.ContentRecord{*rec}, m.records...)
	if len(m.records) > historyCap {
		m.records = m.records[:historyCap]
	}
	return nil
}

func (m *MemoryStore) Recent(ctx context.Context, limit int) ([]types.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]types.ContentRecord, limit)
	copy(out, m.records[:limit])
	return out, nil
}

func (m *MemoryStore) RecentTopics(ctx context.Context, limit int) ([]string, error) {
	records, err := m.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	topics := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Topic != "" {
			topics = append(topics, rec.Topic)
		}
	}
	return topics, nil
}

func (m *MemoryStore) MarkUploaded(ctx context.Context, id, youtubeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID != id {
			continue
		}
		m.records[i].Uploaded = true
		m.records[i].YouTubeID = youtubeID

		now := time.Now()
		m.uploads[now.Format("2006-01-02")]++
		m.lastUpload = now
		return nil
	}
	return fmt.Errorf("no history record with id %s", id)
}

func (m *MemoryStore) TodayUploadCount(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads[time.Now().Format("2006-01-02")], nil
}

func (m *MemoryStore) LastUploadAt(ctx context.Context) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUpload, nil
}

func (m *MemoryStore) GetConfig(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conf[key], nil
}

func (m *MemoryStore) SetConfig(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conf[key] = value
	return nil
}
