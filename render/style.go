// Package render orchestrates a full generation: speech, frames, audio
// mix and the final merge, degrading gracefully when optional
// subsystems are missing.
package render

import (
	"math/rand"

	"codereel/compose"
	"codereel/themes"
	"codereel/types"
)

// Style is the fully resolved look and voice of a single render.
// Request fields left empty are filled with a random catalog pick so
// unattended renders vary between videos.
type Style struct {
	Visual    themes.VisualTheme
	Terminal  themes.TerminalTheme
	Cursor    themes.Cursor
	Language  themes.Language
	Voice     string
	SlideFrom compose.SlideDirection
}

var slideDirections = []compose.SlideDirection{
	compose.SlideFromBottom,
	compose.SlideFromLeft,
	compose.SlideFromRight,
}

// ResolveStyle fixes every presentation choice for one render up front,
// so the rest of the pipeline is deterministic. defaultVoice names the
// configured narration voice used when the request does not pick one.
func ResolveStyle(req types.GenerationRequest, defaultVoice string) Style {
	s := Style{
		Visual:    themes.Visuals[rand.Intn(len(themes.Visuals))],
		Terminal:  themes.Terminals[rand.Intn(len(themes.Terminals))],
		Cursor:    themes.Cursors[rand.Intn(len(themes.Cursors))],
		Language:  themes.DetectLanguage(req.Code),
		Voice:     themes.VoiceByID(defaultVoice),
		SlideFrom: slideDirections[rand.Intn(len(slideDirections))],
	}

	if req.VisualThemeID != "" {
		s.Visual = themes.VisualByID(req.VisualThemeID)
	}
	if req.TerminalThemeID != "" {
		s.Terminal = themes.TerminalByID(req.TerminalThemeID)
	}
	if req.CursorGlyph != "" {
		s.Cursor = themes.CursorByID(req.CursorGlyph)
	}
	if req.TargetLanguageID != "" {
		s.Language = themes.LanguageByID(req.TargetLanguageID)
	}
	if req.SpeechVoiceID != "" {
		s.Voice = themes.VoiceByID(req.SpeechVoiceID)
	}
	return s
}
