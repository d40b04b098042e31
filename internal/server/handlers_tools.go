package server

import (
	"log"
	"net/http"
	"strings"

	"prompt-library/internal/library"

	"github.com/gin-gonic/gin"
)

type createToolRequest struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Description *string  `json:"description"`
	CategoryID  string   `json:"categoryId" binding:"required"`
	Website     *string  `json:"website"`
	Logo        *string  `json:"logo"`
	GithubURL   *string  `json:"githubUrl"`
	Features    []string `json:"features"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" binding:"omitempty,oneof=ACTIVE DEPRECATED ARCHIVED"`
}

var createToolMessages = bindMessages{
	"status": {"oneof": "invalid tool status"},
}

func (s *Server) handleListTools(c *gin.Context) {
	filter := library.ToolFilter{
		CategoryID: strings.TrimSpace(c.Query("categoryId")),
		Search:     strings.TrimSpace(c.Query("search")),
		Status:     strings.TrimSpace(c.Query("status")),
	}
	result, err := s.library.ListTools(c.Request.Context(), filter, s.page(c, toolsPerPage))
	if err != nil {
		respondFailure(c, err, "failed to load tools")
		return
	}
	respondList(c, result)
}

func (s *Server) handleCreateTool(c *gin.Context) {
	var req createToolRequest
	if !bindJSON(c, &req, createToolMessages) {
		return
	}
	tool, err := s.library.CreateTool(c.Request.Context(), library.ToolInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Website:     req.Website,
		Logo:        req.Logo,
		GithubURL:   req.GithubURL,
		Features:    req.Features,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		respondFailure(c, err, "failed to create tool")
		return
	}
	log.Printf("tool created tool_id=%s slug=%s", tool.ID, tool.Slug)
	respondData(c, http.StatusCreated, tool)
}

func (s *Server) handleGetTool(c *gin.Context) {
	tool, err := s.library.GetTool(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondFailure(c, err, "failed to load tool")
		return
	}
	respondData(c, http.StatusOK, tool)
}
