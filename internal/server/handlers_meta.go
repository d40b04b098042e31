package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"prompt-library/internal/db"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.library.ListCategories(c.Request.Context())
	if err != nil {
		respondFailure(c, err, "failed to load categories")
		return
	}
	respondData(c, http.StatusOK, categories)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.library.Stats(c.Request.Context())
	if err != nil {
		respondFailure(c, err, "failed to load stats")
		return
	}
	respondData(c, http.StatusOK, stats)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx, s.db); err != nil {
		log.Printf("health check failed err=%v", err)
		respondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondMessage(c, "ok")
}
