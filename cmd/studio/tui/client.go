package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AuthStatus mirrors the /api/auth/status payload.
type AuthStatus struct {
	Authenticated   bool `json:"authenticated"`
	AudioEnabled    bool `json:"audio_enabled"`
	SpeechAvailable bool `json:"speech_available"`
	MergeAvailable  bool `json:"merge_available"`
}

// Lesson is the slice of a history record the studio displays.
type Lesson struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	Uploaded  bool      `json:"uploaded"`
	YouTubeID string    `json:"youtube_id"`
}

// GenerateResult mirrors the generation response of the API.
type GenerateResult struct {
	Success     bool    `json:"success"`
	VideoURL    string  `json:"video_url"`
	Uploaded    bool    `json:"uploaded"`
	YouTubeID   string  `json:"youtube_id"`
	UploadError string  `json:"upload_error"`
	Error       string  `json:"error"`
	Content     *Lesson `json:"content"`
}

// StudioClient is a thin HTTP client for the codereel API. Rendering is
// synchronous on the server, so generation calls get a far longer timeout
// than status polls.
type StudioClient struct {
	baseURL string
	quick   *http.Client
	slow    *http.Client
}

// NewStudioClient creates a client for the API at baseURL.
func NewStudioClient(baseURL string) *StudioClient {
	return &StudioClient{
		baseURL: baseURL,
		quick:   &http.Client{Timeout: 5 * time.Second},
		slow:    &http.Client{Timeout: 15 * time.Minute},
	}
}

// AuthStatus fetches the upload credential state and render capabilities.
func (c *StudioClient) AuthStatus() (*AuthStatus, error) {
	resp, err := c.quick.Get(c.baseURL + "/api/auth/status")
	if err != nil {
		return nil, fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status check returned %d", resp.StatusCode)
	}

	var status AuthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &status, nil
}

// History fetches the most recent lessons, newest first.
func (c *StudioClient) History(limit int) ([]Lesson, error) {
	resp, err := c.quick.Get(fmt.Sprintf("%s/api/history?limit=%d", c.baseURL, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history request returned %d", resp.StatusCode)
	}

	var payload struct {
		Lessons []Lesson `json:"lessons"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return payload.Lessons, nil
}

// GenerateAI asks the API to invent and render a fresh lesson. The call
// blocks until the video is finished, which can take minutes.
func (c *StudioClient) GenerateAI(upload bool) (*GenerateResult, error) {
	body, err := json.Marshal(struct {
		AutoUpload bool `json:"auto_upload"`
	}{AutoUpload: upload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.slow.Post(c.baseURL+"/api/ai/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	// Failed runs still answer with a JSON body carrying the error.
	var result GenerateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode generation response (HTTP %d): %w", resp.StatusCode, err)
	}
	return &result, nil
}
