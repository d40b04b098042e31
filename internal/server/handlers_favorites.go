package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type favoriteRequest struct {
	UserID   string `json:"userId" binding:"required"`
	PromptID string `json:"promptId" binding:"required"`
}

func (s *Server) handleListFavorites(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	result, err := s.library.ListFavorites(c.Request.Context(), userID, s.page(c, favoritesPerPage))
	if err != nil {
		respondFailure(c, err, "failed to load favorites")
		return
	}
	respondList(c, result)
}

func (s *Server) handleCreateFavorite(c *gin.Context) {
	var req favoriteRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	favorite, err := s.library.CreateFavorite(c.Request.Context(), req.UserID, req.PromptID)
	if err != nil {
		respondFailure(c, err, "failed to add favorite")
		return
	}
	respondData(c, http.StatusCreated, favorite)
}

func (s *Server) handleDeleteFavorite(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	promptID := strings.TrimSpace(c.Query("promptId"))
	if err := s.library.DeleteFavorite(c.Request.Context(), userID, promptID); err != nil {
		respondFailure(c, err, "failed to remove favorite")
		return
	}
	respondMessage(c, "favorite removed")
}
