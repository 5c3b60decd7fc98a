// Package scheduler drives unattended lesson publishing on a cron.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"codereel/config"
	"codereel/history"
	"codereel/publish"
)

// Clock lets tests pin the current time.
type Clock func() time.Time

// Config tunes the automated posting window.
type Config struct {
	Schedule        string // cron spec
	ActiveHourStart int    // inclusive
	ActiveHourEnd   int    // exclusive
	MinInterval     time.Duration
	DailyLimit      int
	Enabled         bool

	// Seed optionally supplies a topic hint per run, e.g. from
	// trending feeds. Nil leaves topic choice to the generator.
	Seed func() string
}

// DefaultConfig posts hourly inside the configured active window.
func DefaultConfig(s config.Settings) Config {
	return Config{
		Schedule:        "0 * * * *",
		ActiveHourStart: config.ActiveHourStart,
		ActiveHourEnd:   config.ActiveHourEnd,
		MinInterval:     config.MinUploadInterval,
		DailyLimit:      s.DailyUploadLimit,
		Enabled:         s.EnableUpload,
	}
}

// Scheduler fires the publisher whenever the posting window allows it.
type Scheduler struct {
	cfg       Config
	publisher *publish.Publisher
	store     history.Store
	cron      *cron.Cron
	now       Clock

	mu   sync.Mutex
	busy bool
}

func New(cfg Config, publisher *publish.Publisher, store history.Store) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		publisher: publisher,
		store:     store,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start registers the job and begins ticking. A disabled scheduler
// starts nothing and returns nil.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		log.Printf("⏸ Automated publishing disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.tick); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cron.Start()
	log.Printf("⏰ Automated publishing on schedule %q", s.cfg.Schedule)
	return nil
}

// Stop halts the cron and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// tick runs one scheduled attempt. Renders take minutes, so a tick
// that fires while the previous one still runs is skipped.
func (s *Scheduler) tick() {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		log.Printf("⏭ Cron skipped: a publish is already running")
		return
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	ctx := context.Background()
	if reason := s.holdReason(ctx); reason != "" {
		log.Printf("⏭ Cron skipped: %s", reason)
		return
	}

	seed := ""
	if s.cfg.Seed != nil {
		seed = s.cfg.Seed()
	}

	log.Printf("⏰ Cron triggered: publishing a new lesson")
	if res := s.publisher.PublishGenerated(ctx, seed); res.Error != "" {
		log.Printf("❌ Scheduled publish failed: %s", res.Error)
	}
}

// holdReason explains why now is a bad time to publish, or returns the
// empty string when posting may proceed.
func (s *Scheduler) holdReason(ctx context.Context) string {
	now := s.now()
	hour := now.Hour()
	if hour < s.cfg.ActiveHourStart || hour >= s.cfg.ActiveHourEnd {
		return fmt.Sprintf("outside active hours (%02d:00-%02d:00)", s.cfg.ActiveHourStart, s.cfg.ActiveHourEnd)
	}

	if s.cfg.DailyLimit > 0 {
		count, err := s.store.TodayUploadCount(ctx)
		if err != nil {
			return fmt.Sprintf("upload counter unreadable: %v", err)
		}
		if count >= s.cfg.DailyLimit {
			return fmt.Sprintf("daily limit of %d uploads reached", s.cfg.DailyLimit)
		}
	}

	last, err := s.store.LastUploadAt(ctx)
	if err != nil {
		return fmt.Sprintf("last upload time unreadable: %v", err)
	}
	if !last.IsZero() && now.Sub(last) < s.cfg.MinInterval {
		return fmt.Sprintf("last upload %s ago, spacing uploads %s apart",
			now.Sub(last).Round(time.Minute), s.cfg.MinInterval)
	}
	return ""
}
