// Command preview writes the keyboard and ambience sounds to WAV files so
// they can be auditioned before a render. Point -sounds at a directory of
// recorded clicks to hear those instead of the built-in synth.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"codereel/audio"
	"codereel/config"
)

func main() {
	out := flag.String("out", "preview", "directory the WAV files are written to")
	rate := flag.Int("rate", config.SampleRate, "sample rate in Hz")
	sounds := flag.String("sounds", "", "directory of recorded key clicks (empty uses the synth pool)")
	ambientMs := flag.Int("ambient-ms", 6000, "length of the ambient pad preview in milliseconds")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("❌ Failed to create %s: %v", *out, err)
	}

	pool := audio.LoadKeyPool(*sounds, *rate)
	for i := 0; i < pool.Size(); i++ {
		path := filepath.Join(*out, fmt.Sprintf("key_%02d.wav", i+1))
		if err := audio.SaveWAV(path, pool.Variant(i)); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", path, err)
		}
	}

	enterPath := filepath.Join(*out, "enter.wav")
	if err := audio.SaveWAV(enterPath, audio.EnterClip(*rate)); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", enterPath, err)
	}

	ambientPath := filepath.Join(*out, "ambient.wav")
	if err := audio.SaveWAV(ambientPath, audio.AmbientPad(*rate).Tiled(*ambientMs)); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", ambientPath, err)
	}

	fmt.Printf("🔊 Wrote %d key clicks, enter.wav and ambient.wav to %s\n", pool.Size(), *out)
}
