package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"codereel/api"
	"codereel/audio"
	"codereel/config"
	"codereel/content"
	"codereel/history"
	"codereel/publish"
	"codereel/render"
	"codereel/scheduler"
	"codereel/speech"
	"codereel/storage"
	"codereel/video"
	"codereel/worker"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	mode := flag.String("mode", "api", "run mode: api, worker, schedule or once")
	port := flag.String("port", "", "HTTP API port (overrides PORT)")
	seed := flag.String("seed", "", "topic seed for -mode once (empty picks a trending theme)")
	feeds := flag.String("feeds", "", "comma separated feed presets or URLs mined for trending themes")
	lightweight := flag.Bool("lightweight", false, "fast low-fidelity rendering")
	flag.Parse()

	settings := config.FromEnv()
	if *port != "" {
		settings.Port = *port
	}
	if *lightweight {
		settings.Lightweight = true
	}

	log.Println("🎥 CodeReel - Starting...")

	ctx := context.Background()

	store := history.NewStore(settings)
	defer store.Close()

	pipeline := render.NewPipeline(
		render.ConfigFromSettings(settings),
		func(path string, width, height, fps int) (render.FrameEncoder, error) {
			return video.NewStreamEncoder(path, width, height, fps)
		},
		video.FFmpegMuxer{},
		speech.NewEdgeTTS(""),
		audio.NewMixer(mixerConfig(settings)),
	)

	generator := content.NewGenerator(settings.CohereAPIKey, settings.CohereModel, store)

	// A typed nil must not end up inside the interface, the publisher
	// treats any non-nil uploader as working credentials.
	var videoUploader publish.VideoUploader
	if uploader, err := publish.NewUploader(ctx, settings, store); err != nil {
		log.Printf("⚠️ Uploads disabled: %v", err)
	} else {
		videoUploader = uploader
	}

	publisher := publish.NewPublisher(pipeline, generator, store, videoUploader,
		settings.EnableUpload, settings.DailyUploadLimit)

	if archiver, err := storage.NewArchiver(ctx, settings); err != nil {
		log.Printf("⚠️ Archiving disabled: %v", err)
	} else if archiver != nil {
		publisher = publisher.WithArchiver(archiver)
	}

	switch *mode {
	case "api":
		runServer(settings, publisher, pipeline, store, *feeds)
	case "worker":
		runWorker(settings, publisher)
	case "schedule":
		runSchedule(settings, publisher, store, *feeds)
	case "once":
		runOnce(ctx, publisher, *seed, *feeds)
	default:
		log.Fatalf("unknown mode %q (want api, worker, schedule or once)", *mode)
	}
}

// runServer hosts the HTTP API with the posting scheduler alongside.
func runServer(settings config.Settings, publisher *publish.Publisher, pipeline *render.Pipeline, store history.Store, feeds string) {
	server := api.NewServer(publisher, pipeline.Capabilities(), store, settings)
	if err := server.Start(); err != nil {
		log.Fatalf("❌ Failed to start API: %v", err)
	}

	schedCfg := scheduler.DefaultConfig(settings)
	schedCfg.Seed = func() string { return trendSeed(feeds) }
	sched := scheduler.New(schedCfg, publisher, store)
	if err := sched.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}

	caps := pipeline.Capabilities()
	fmt.Printf("🎥 CodeReel\n")
	fmt.Printf("   API:     http://0.0.0.0:%s\n", settings.Port)
	fmt.Printf("   Output:  %s\n", settings.OutputDir)
	fmt.Printf("   Audio:   %v (speech: %v, merge: %v)\n", caps.AudioEnabled, caps.SpeechAvailable, caps.MergeAvailable)
	fmt.Printf("   Uploads: %v (daily limit %d)\n", settings.EnableUpload && publisher.CanUpload(), settings.DailyUploadLimit)
	fmt.Println("\nPress Ctrl+C to shutdown")

	waitForSignal()

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	fmt.Println("Server stopped")
}

// runWorker consumes queued render requests until terminated.
func runWorker(settings config.Settings, publisher *publish.Publisher) {
	log.Println("📨 Running in render queue consumer mode")

	w, err := worker.New(settings, publisher)
	if err != nil {
		log.Fatalf("❌ Failed to create worker: %v", err)
	}
	if err := w.Run(); err != nil {
		log.Fatalf("❌ Worker stopped: %v", err)
	}
}

// runSchedule runs the posting loop headless, without the API.
func runSchedule(settings config.Settings, publisher *publish.Publisher, store history.Store, feeds string) {
	cfg := scheduler.DefaultConfig(settings)
	// The operator asked for the loop explicitly; the publisher still
	// gates uploads on ENABLE_UPLOAD.
	cfg.Enabled = true
	cfg.Seed = func() string { return trendSeed(feeds) }

	sched := scheduler.New(cfg, publisher, store)
	if err := sched.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}

	log.Println("⏰ Scheduler running, press Ctrl+C to stop")
	waitForSignal()
	sched.Stop()
}

// runOnce generates and publishes a single lesson, then exits.
func runOnce(ctx context.Context, publisher *publish.Publisher, seed, feeds string) {
	if seed == "" {
		seed = trendSeed(feeds)
	}

	res := publisher.PublishGenerated(ctx, seed)
	if res.Error != "" {
		log.Fatalf("❌ Generation failed: %s", res.Error)
	}

	log.Printf("Video: %s", res.VideoPath)
	if res.Uploaded {
		log.Printf("YouTube: https://youtube.com/shorts/%s", res.YouTubeID)
	} else if res.UploadError != "" {
		log.Printf("Upload failed: %s", res.UploadError)
	}
}

// trendSeed steers generation toward a currently trending theme from
// the configured feeds.
func trendSeed(feeds string) string {
	return content.SeedLine(content.FetchTrends(content.ResolveFeeds(feeds), 5))
}

// mixerConfig maps settings onto the audio mixer. The "synth" ambient
// sentinel selects the built-in pad, which needs no file.
func mixerConfig(s config.Settings) audio.MixerConfig {
	ambient := s.AmbientTrack
	if ambient == "synth" {
		ambient = ""
	}

	return audio.MixerConfig{
		SampleRate:    config.SampleRate,
		KeyGainDB:     config.KeyClickGainDB,
		EnterGainDB:   config.EnterGainDB,
		AmbientGainDB: config.AmbientGainDB,
		AmbientTrack:  ambient,
		PoolDir:       s.SoundsDir,
	}
}

func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
}
