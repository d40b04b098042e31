package server

import (
	"strconv"
	"strings"

	"prompt-library/internal/library"

	"github.com/gin-gonic/gin"
)

// Default page sizes per listing.
const (
	toolsPerPage       = 20
	promptsPerPage     = 10
	collectionsPerPage = 12
	itemsPerPage       = 20
	favoritesPerPage   = 20
)

func parsePagination(c *gin.Context, defaultPerPage, maxPerPage int) library.Page {
	page := library.Page{Number: 1, Limit: defaultPerPage}
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			page.Number = value
		}
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			page.Limit = value
		}
	}
	if maxPerPage > 0 && page.Limit > maxPerPage {
		page.Limit = maxPerPage
	}
	return page
}

func (s *Server) page(c *gin.Context, defaultPerPage int) library.Page {
	return parsePagination(c, defaultPerPage, s.cfg.MaxPageLimit)
}
