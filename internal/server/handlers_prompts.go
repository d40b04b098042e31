package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"prompt-library/internal/library"

	"github.com/gin-gonic/gin"
)

type createPromptRequest struct {
	ToolID     string          `json:"toolId" binding:"required"`
	Version    string          `json:"version" binding:"required"`
	Type       string          `json:"type" binding:"omitempty,oneof=SYSTEM AGENT TOOL_DEFINITION MEMORY PLANNING OTHER BUSINESS"`
	Content    string          `json:"content" binding:"required"`
	Metadata   json.RawMessage `json:"metadata"`
	Language   string          `json:"language"`
	Source     *string         `json:"source"`
	SourceURL  *string         `json:"sourceUrl"`
	IsOfficial bool            `json:"isOfficial"`
	VerifiedAt *time.Time      `json:"verifiedAt"`
}

var createPromptMessages = bindMessages{
	"type": {"oneof": "invalid prompt type"},
}

type updatePromptRequest struct {
	Version    library.Optional[string]          `json:"version"`
	Type       library.Optional[string]          `json:"type"`
	Content    library.Optional[string]          `json:"content"`
	Metadata   library.Optional[json.RawMessage] `json:"metadata"`
	Language   library.Optional[string]          `json:"language"`
	Source     library.Optional[string]          `json:"source"`
	SourceURL  library.Optional[string]          `json:"sourceUrl"`
	IsOfficial library.Optional[bool]            `json:"isOfficial"`
	VerifiedAt library.Optional[time.Time]       `json:"verifiedAt"`
}

func (s *Server) handleListPrompts(c *gin.Context) {
	filter := library.PromptFilter{
		ToolID: strings.TrimSpace(c.Query("toolId")),
		Type:   strings.TrimSpace(c.Query("type")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	result, err := s.library.ListPrompts(c.Request.Context(), filter, s.page(c, promptsPerPage))
	if err != nil {
		respondFailure(c, err, "failed to load prompts")
		return
	}
	respondList(c, result)
}

func (s *Server) handleCreatePrompt(c *gin.Context) {
	var req createPromptRequest
	if !bindJSON(c, &req, createPromptMessages) {
		return
	}
	prompt, err := s.library.CreatePrompt(c.Request.Context(), library.PromptInput{
		ToolID:     req.ToolID,
		Version:    req.Version,
		Type:       req.Type,
		Content:    req.Content,
		Metadata:   req.Metadata,
		Language:   req.Language,
		Source:     req.Source,
		SourceURL:  req.SourceURL,
		IsOfficial: req.IsOfficial,
		VerifiedAt: req.VerifiedAt,
	})
	if err != nil {
		respondFailure(c, err, "failed to create prompt")
		return
	}
	log.Printf("prompt created prompt_id=%s tool_id=%s hash=%s", prompt.ID, prompt.ToolID, prompt.Hash)
	respondData(c, http.StatusCreated, prompt)
}

func (s *Server) handleGetPrompt(c *gin.Context) {
	prompt, err := s.library.GetPrompt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFailure(c, err, "failed to load prompt")
		return
	}
	respondData(c, http.StatusOK, prompt)
}

func (s *Server) handleUpdatePrompt(c *gin.Context) {
	var req updatePromptRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	prompt, err := s.library.UpdatePrompt(c.Request.Context(), c.Param("id"), library.PromptPatch{
		Version:    req.Version,
		Type:       req.Type,
		Content:    req.Content,
		Metadata:   req.Metadata,
		Language:   req.Language,
		Source:     req.Source,
		SourceURL:  req.SourceURL,
		IsOfficial: req.IsOfficial,
		VerifiedAt: req.VerifiedAt,
	})
	if err != nil {
		respondFailure(c, err, "failed to update prompt")
		return
	}
	log.Printf("prompt updated prompt_id=%s hash=%s", prompt.ID, prompt.Hash)
	respondData(c, http.StatusOK, prompt)
}

func (s *Server) handleDeletePrompt(c *gin.Context) {
	id := c.Param("id")
	if err := s.library.DeletePrompt(c.Request.Context(), id); err != nil {
		respondFailure(c, err, "failed to delete prompt")
		return
	}
	log.Printf("prompt deleted prompt_id=%s", id)
	respondMessage(c, "prompt deleted")
}

func (s *Server) handleDownloadPrompt(c *gin.Context) {
	prompt, err := s.library.RecordDownload(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFailure(c, err, "failed to record download")
		return
	}
	respondData(c, http.StatusOK, prompt)
}
