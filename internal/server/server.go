package server

import (
	"net/http"

	"prompt-library/internal/config"
	"prompt-library/internal/library"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type Server struct {
	db      *gorm.DB
	library *library.Library
	cfg     config.Config
	limiter *rateLimiter
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		db:      conn,
		library: library.New(conn),
		cfg:     cfg,
		limiter: newRateLimiter(cfg.WriteRatePerSecond, cfg.WriteRateBurst),
	}
}

func (s *Server) Handler() http.Handler {
	registerValidators()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not found")
	})

	api := router.Group("/api")
	api.GET("/healthz", s.handleHealth)
	api.GET("/stats", s.handleStats)
	api.GET("/categories", s.handleListCategories)

	api.GET("/tools", s.handleListTools)
	api.POST("/tools", s.limitWrites, s.handleCreateTool)
	api.GET("/tools/:slug", s.handleGetTool)

	api.GET("/prompts", s.handleListPrompts)
	api.POST("/prompts", s.limitWrites, s.handleCreatePrompt)
	api.GET("/prompts/:id", s.handleGetPrompt)
	api.PUT("/prompts/:id", s.limitWrites, s.handleUpdatePrompt)
	api.DELETE("/prompts/:id", s.limitWrites, s.handleDeletePrompt)
	api.POST("/prompts/:id/download", s.limitWrites, s.handleDownloadPrompt)

	api.GET("/collections", s.handleListCollections)
	api.POST("/collections", s.limitWrites, s.handleCreateCollection)
	api.GET("/collections/:id", s.handleGetCollection)
	api.PUT("/collections/:id", s.limitWrites, s.handleUpdateCollection)
	api.DELETE("/collections/:id", s.limitWrites, s.handleDeleteCollection)
	api.GET("/collections/:id/items", s.handleListCollectionItems)
	api.POST("/collections/:id/items", s.limitWrites, s.handleAddCollectionItem)

	api.GET("/favorites", s.handleListFavorites)
	api.POST("/favorites", s.limitWrites, s.handleCreateFavorite)
	api.DELETE("/favorites", s.limitWrites, s.handleDeleteFavorite)

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)
}
