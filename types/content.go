package types

import "time"

// ContentRecord is one generated tutorial idea with its metadata,
// persisted to history so future generations avoid repeats.
type ContentRecord struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	Question       string    `json:"question"`
	Code           string    `json:"code"`
	ExpectedOutput string    `json:"expected_output"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags,omitempty"`
	Language       string    `json:"language"`
	CreatedAt      time.Time `json:"created_at"`

	Uploaded  bool   `json:"uploaded,omitempty"`
	YouTubeID string `json:"youtube_id,omitempty"`
}

// Request converts a record into the render payload it describes.
func (c *ContentRecord) Request() GenerationRequest {
	return GenerationRequest{
		Question:         c.Question,
		Code:             c.Code,
		ExpectedOutput:   c.ExpectedOutput,
		TargetLanguageID: c.Language,
	}
}
