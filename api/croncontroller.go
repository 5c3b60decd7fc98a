package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codereel/publish"
)

// CronResponse wraps a batch of scheduled generation results.
type CronResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Results []publish.Result `json:"results"`
}

// handleCronGenerate lets an external scheduler trigger generations.
// A shared secret guards it when CRON_SECRET is set. Each iteration
// re-checks the daily limit so a batch stops as soon as it is hit.
// GET|POST /api/cron/generate?secret=...&count=N
func (s *Server) handleCronGenerate(c *gin.Context) {
	if s.settings.CronSecret != "" && c.Query("secret") != s.settings.CronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	count := 1
	if raw := c.Query("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	ctx := c.Request.Context()
	results := make([]publish.Result, 0, count)
	for i := 0; i < count; i++ {
		if s.settings.DailyUploadLimit > 0 {
			uploaded, err := s.store.TodayUploadCount(ctx)
			if err == nil && uploaded >= s.settings.DailyUploadLimit {
				results = append(results, publish.Result{Error: "daily upload limit reached"})
				break
			}
		}

		s.renderMu.Lock()
		res := s.publisher.PublishGenerated(ctx, "")
		s.renderMu.Unlock()
		results = append(results, res)
	}

	c.JSON(http.StatusOK, CronResponse{Success: true, Count: len(results), Results: results})
}
