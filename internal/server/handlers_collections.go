package server

import (
	"log"
	"net/http"
	"strings"

	"prompt-library/internal/library"

	"github.com/gin-gonic/gin"
)

type createCollectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"isPublic"`
	UserID      string  `json:"userId" binding:"required"`
}

type updateCollectionRequest struct {
	Name        library.Optional[string] `json:"name"`
	Description library.Optional[string] `json:"description"`
	IsPublic    library.Optional[bool]   `json:"isPublic"`
}

type addItemRequest struct {
	PromptID string  `json:"promptId" binding:"required"`
	Note     *string `json:"note"`
	Order    *int    `json:"order"`
}

var addItemMessages = bindMessages{
	"promptId": {"required": "missing prompt id"},
}

func (s *Server) handleListCollections(c *gin.Context) {
	filter := library.CollectionFilter{
		UserID: strings.TrimSpace(c.Query("userId")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if raw, ok := c.GetQuery("isPublic"); ok {
		public := raw == "true"
		filter.IsPublic = &public
	}
	result, err := s.library.ListCollections(c.Request.Context(), filter, s.page(c, collectionsPerPage))
	if err != nil {
		respondFailure(c, err, "failed to load collections")
		return
	}
	respondList(c, result)
}

func (s *Server) handleCreateCollection(c *gin.Context) {
	var req createCollectionRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	collection, err := s.library.CreateCollection(c.Request.Context(), library.CollectionInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		UserID:      req.UserID,
	})
	if err != nil {
		respondFailure(c, err, "failed to create collection")
		return
	}
	log.Printf("collection created collection_id=%s user_id=%s", collection.ID, collection.UserID)
	respondData(c, http.StatusCreated, collection)
}

func (s *Server) handleGetCollection(c *gin.Context) {
	collection, err := s.library.GetCollection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFailure(c, err, "failed to load collection")
		return
	}
	respondData(c, http.StatusOK, collection)
}

func (s *Server) handleUpdateCollection(c *gin.Context) {
	var req updateCollectionRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	collection, err := s.library.UpdateCollection(c.Request.Context(), c.Param("id"), library.CollectionPatch{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondFailure(c, err, "failed to update collection")
		return
	}
	respondData(c, http.StatusOK, collection)
}

func (s *Server) handleDeleteCollection(c *gin.Context) {
	id := c.Param("id")
	if err := s.library.DeleteCollection(c.Request.Context(), id); err != nil {
		respondFailure(c, err, "failed to delete collection")
		return
	}
	log.Printf("collection deleted collection_id=%s", id)
	respondMessage(c, "collection deleted")
}

func (s *Server) handleListCollectionItems(c *gin.Context) {
	result, err := s.library.ListCollectionItems(c.Request.Context(), c.Param("id"), s.page(c, itemsPerPage))
	if err != nil {
		respondFailure(c, err, "failed to load collection items")
		return
	}
	respondList(c, result)
}

func (s *Server) handleAddCollectionItem(c *gin.Context) {
	var req addItemRequest
	if !bindJSON(c, &req, addItemMessages) {
		return
	}
	item, err := s.library.AddCollectionItem(c.Request.Context(), c.Param("id"), library.ItemInput{
		PromptID: req.PromptID,
		Note:     req.Note,
		Order:    req.Order,
	})
	if err != nil {
		respondFailure(c, err, "failed to add item to collection")
		return
	}
	log.Printf("collection item added collection_id=%s prompt_id=%s order=%d", item.CollectionID, item.PromptID, item.Order)
	respondData(c, http.StatusCreated, item)
}
