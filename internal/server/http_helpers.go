package server

import (
	"log"
	"net/http"

	"prompt-library/internal/apperr"
	"prompt-library/internal/library"

	"github.com/gin-gonic/gin"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondList[T any](c *gin.Context, result library.PageResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Items,
		"pagination": result.Pagination,
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondFailure maps a library error to its status. Internal details are
// logged and never sent to the caller.
func respondFailure(c *gin.Context, err error, fallback string) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed method=%s path=%s err=%v", c.Request.Method, c.FullPath(), err)
	}
	respondError(c, status, apperr.Message(err, fallback))
}
