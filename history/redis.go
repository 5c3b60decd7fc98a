package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"codereel/types"
)

const (
	historyKey    = "lessons:history"
	lastUploadKey = "lessons:last_upload"
	uploadsKeyFmt = "lessons:uploads:%s"
	configKeyFmt  = "lessons:config:%s"
	historyCap    = 200
	pingTimeout   = 5 * time.Second
)

// RedisStore keeps lesson history in a capped Redis list plus a per-day
// upload counter.
type RedisStore struct {
	client *redis.Client
}

// NewRedis connects and verifies the server is reachable.
func NewRedis(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Add(ctx context.Context, rec *types.ContentRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := r.client.LPush(ctx, historyKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return r.client.LTrim(ctx, historyKey, 0, historyCap-1).Err()
}

func (r *RedisStore) Recent(ctx context.Context, limit int) ([]types.ContentRecord, error) {
	if limit <= 0 || limit > historyCap {
		limit = historyCap
	}

	raw, err := r.client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	records := make([]types.ContentRecord, 0, len(raw))
	for _, item := range raw {
		var rec types.ContentRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			log.Printf("⚠️ Skipping unreadable history entry: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisStore) RecentTopics(ctx context.Context, limit int) ([]string, error) {
	records, err := r.Recent(ctx, limit)
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

func (r *RedisStore) MarkUploaded(ctx context.Context, id, youtubeID string) error {
	raw, err := r.client.LRange(ctx, historyKey, 0, historyCap-1).Result()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	for i, item := range raw {
		var rec types.ContentRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		if rec.ID != id {
			continue
		}

		rec.Uploaded = true
		rec.YouTubeID = youtubeID
		payload, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		if err := r.client.LSet(ctx, historyKey, int64(i), payload).Err(); err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}
		return r.recordUpload(ctx)
	}
	return fmt.Errorf("no history record with id %s", id)
}

// recordUpload bumps today's counter and stamps the last upload time.
// The counter expires on its own once the day is long past.
func (r *RedisStore) recordUpload(ctx context.Context) error {
	key := fmt.Sprintf(uploadsKeyFmt, time.Now().Format("2006-01-02"))
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to count upload: %w", err)
	}
	if err := r.client.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to expire upload counter: %w", err)
	}
	return r.client.Set(ctx, lastUploadKey, time.Now().Format(time.RFC3339), 0).Err()
}

func (r *RedisStore) TodayUploadCount(ctx context.Context) (int, error) {
	key := fmt.Sprintf(uploadsKeyFmt, time.Now().Format("2006-01-02"))
	n, err := r.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read upload counter: %w", err)
	}
	return n, nil
}

// GetConfig reads a config value, returning "" for unset keys.
func (r *RedisStore) GetConfig(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, fmt.Sprintf(configKeyFmt, key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisStore) SetConfig(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, fmt.Sprintf(configKeyFmt, key), value, 0).Err()
}

func (r *RedisStore) LastUploadAt(ctx context.Context) (time.Time, error) {
	raw, err := r.client.Get(ctx, lastUploadKey).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last upload time: %w", err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt last upload timestamp: %w", err)
	}
	return t, nil
}
