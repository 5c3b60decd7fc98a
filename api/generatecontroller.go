package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"codereel/publish"
	"codereel/render"
	"codereel/types"
)

// GenerateRequest is the manual generation payload. AutoUpload
// defaults to true so the frontend uploads unless told otherwise.
type GenerateRequest struct {
	types.GenerationRequest
	AutoUpload *bool `json:"auto_upload"`
}

// AIGenerateRequest optionally steers the lesson topic.
type AIGenerateRequest struct {
	Seed       string `json:"seed"`
	AutoUpload *bool  `json:"auto_upload"`
}

// GenerateResponse mirrors the publish result with a download URL the
// frontend can follow.
type GenerateResponse struct {
	Success     bool                 `json:"success"`
	VideoURL    string               `json:"video_url,omitempty"`
	Uploaded    bool                 `json:"uploaded"`
	YouTubeID   string               `json:"youtube_id,omitempty"`
	UploadError string               `json:"upload_error,omitempty"`
	Error       string               `json:"error,omitempty"`
	Content     *types.ContentRecord `json:"content,omitempty"`
}

// AuthStatusResponse reports upload credentials plus the render
// capability flags.
type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
	render.Capabilities
}

// handleGenerate renders caller-supplied material.
// POST /api/generate
func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !req.GenerationRequest.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "question and code are required"})
		return
	}

	s.renderMu.Lock()
	res := s.pickPublisher(req.AutoUpload).PublishRequest(c.Request.Context(), req.GenerationRequest)
	s.renderMu.Unlock()

	s.respondResult(c, res, false)
}

// handleAIGenerate creates a fresh lesson and renders it.
// POST /api/ai/generate
func (s *Server) handleAIGenerate(c *gin.Context) {
	// The body is optional.
	var req AIGenerateRequest
	_ = c.ShouldBindJSON(&req)

	s.renderMu.Lock()
	res := s.pickPublisher(req.AutoUpload).PublishGenerated(c.Request.Context(), req.Seed)
	s.renderMu.Unlock()

	s.respondResult(c, res, true)
}

// handleDownload serves a finished video from the output directory.
// GET /api/download/:filename
func (s *Server) handleDownload(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == ".." || name == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	path := filepath.Join(s.settings.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such video"})
		return
	}
	c.FileAttachment(path, name)
}

// handleAuthStatus reports whether uploads can happen and which render
// capabilities are live.
// GET /api/auth/status
func (s *Server) handleAuthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, AuthStatusResponse{
		Authenticated: s.publisher.CanUpload(),
		Capabilities:  s.caps,
	})
}

func (s *Server) pickPublisher(autoUpload *bool) *publish.Publisher {
	if autoUpload != nil && !*autoUpload {
		return s.publisher.KeepLocal()
	}
	return s.publisher
}

// respondResult converts a publish result to the wire response. AI
// responses carry the generated lesson so the frontend can show it.
func (s *Server) respondResult(c *gin.Context, res publish.Result, withContent bool) {
	resp := GenerateResponse{
		Success:     res.Success,
		Uploaded:    res.Uploaded,
		YouTubeID:   res.YouTubeID,
		UploadError: res.UploadError,
		Error:       res.Error,
	}
	if res.VideoPath != "" {
		resp.VideoURL = "/api/download/" + filepath.Base(res.VideoPath)
	}
	if withContent {
		resp.Content = res.Record
	}

	if !res.Success {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
