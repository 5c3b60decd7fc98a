package render

import (
	"testing"

	"codereel/themes"
	"codereel/types"
)

func TestResolveStyleHonorsExplicitChoices(t *testing.T) {
	req := types.GenerationRequest{
		Question:         "q",
		Code:             "print(1)",
		VisualThemeID:    "dracula",
		TerminalThemeID:  "matrix",
		CursorGlyph:      "underscore",
		SpeechVoiceID:    "en-GB-RyanNeural",
		TargetLanguageID: "java",
	}

	s := ResolveStyle(req, "en-US-ChristopherNeural")

	if s.Visual.ID != "dracula" {
		t.Fatalf("visual theme %q", s.Visual.ID)
	}
	if s.Terminal.ID != "matrix" {
		t.Fatalf("terminal theme %q", s.Terminal.ID)
	}
	if s.Cursor.ID != "underscore" {
		t.Fatalf("cursor %q", s.Cursor.ID)
	}
	if s.Voice != "en-GB-RyanNeural" {
		t.Fatalf("voice %q", s.Voice)
	}
	if s.Language.ID != "java" {
		t.Fatalf("language %q, explicit choice should beat detection", s.Language.ID)
	}
}

func TestResolveStyleDetectsLanguageWhenUnspecified(t *testing.T) {
	req := types.GenerationRequest{Question: "q", Code: "x := 1\nfmt.Println(x)"}

	s := ResolveStyle(req, "")

	if s.Language.ID != "go" {
		t.Fatalf("detected %q, want go", s.Language.ID)
	}
	if s.Language.Command != "go run main.go" {
		t.Fatalf("command %q", s.Language.Command)
	}
}

func TestResolveStyleUsesConfiguredDefaultVoice(t *testing.T) {
	req := types.GenerationRequest{Question: "q", Code: "print(1)"}

	s := ResolveStyle(req, "en-AU-NatashaNeural")
	if s.Voice != "en-AU-NatashaNeural" {
		t.Fatalf("voice %q, want configured default", s.Voice)
	}

	s = ResolveStyle(req, "")
	if s.Voice != themes.Voices[0] {
		t.Fatalf("voice %q, want catalog default", s.Voice)
	}
}

func TestResolveStyleAlwaysLandsInCatalog(t *testing.T) {
	req := types.GenerationRequest{Question: "q", Code: "print(1)"}

	for i := 0; i < 20; i++ {
		s := ResolveStyle(req, "")
		if themes.VisualByID(s.Visual.ID).ID != s.Visual.ID {
			t.Fatalf("random visual %q is not in the catalog", s.Visual.ID)
		}
		if themes.TerminalByID(s.Terminal.ID).ID != s.Terminal.ID {
			t.Fatalf("random terminal %q is not in the catalog", s.Terminal.ID)
		}
	}
}
