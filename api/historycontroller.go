package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// handleHistory lists recent lessons, newest first.
// GET /api/history?limit=N
func (s *Server) handleHistory(c *gin.Context) {
	limit := 25
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := s.store.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(records), "lessons": records})
}
