package types

// GenerationRequest describes one short to render. It is the payload
// carried by API calls and Kafka messages alike.
type GenerationRequest struct {
	Question       string `json:"question"`
	Code           string `json:"code"`
	ExpectedOutput string `json:"expected_output"`

	// Presentation overrides. Empty values fall back to defaults.
	VisualThemeID    string `json:"visual_theme_id,omitempty"`
	TerminalThemeID  string `json:"terminal_theme_id,omitempty"`
	CursorGlyph      string `json:"cursor_glyph,omitempty"`
	SpeechVoiceID    string `json:"speech_voice_id,omitempty"`
	TargetLanguageID string `json:"target_language_id,omitempty"`
}

// Valid reports whether the request carries enough to render.
// ExpectedOutput may be empty: the terminal still opens and runs the
// command, it just prints nothing.
func (r *GenerationRequest) Valid() bool {
	return r.Question != "" && r.Code != ""
}
