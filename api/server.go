// Package api exposes rendering, content generation and lesson history
// over HTTP for the web frontend and external cron triggers.
package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"codereel/config"
	"codereel/history"
	"codereel/publish"
	"codereel/render"
)

// Server wires the publisher, render capabilities and history store
// into a Gin engine.
type Server struct {
	publisher  *publish.Publisher
	caps       render.Capabilities
	store      history.Store
	settings   config.Settings
	httpServer *http.Server

	// The encoder streams one frame at a time, so concurrent
	// generation requests take turns.
	renderMu sync.Mutex
}

// NewServer constructs the engine with registered routes.
func NewServer(publisher *publish.Publisher, caps render.Capabilities, store history.Store, settings config.Settings) *Server {
	s := &Server{
		publisher: publisher,
		caps:      caps,
		store:     store,
		settings:  settings,
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/api/generate", s.handleGenerate)
	r.POST("/api/ai/generate", s.handleAIGenerate)
	r.GET("/api/download/:filename", s.handleDownload)
	r.GET("/api/auth/status", s.handleAuthStatus)
	r.GET("/api/cron/generate", s.handleCronGenerate)
	r.POST("/api/cron/generate", s.handleCronGenerate)
	r.GET("/api/history", s.handleHistory)
	r.GET("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    ":" + settings.Port,
		Handler: r,
	}
	return s
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving in the background.
func (s *Server) Start() error {
	log.Printf("🌐 API listening on %s", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth provides a health check endpoint.
// GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
