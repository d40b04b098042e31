package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgMissingFields = "missing required fields"
	msgInvalidBody   = "invalid request body"
)

// bindMessages maps a JSON field name and a failed validation tag to the
// message returned to the caller.
type bindMessages map[string]map[string]string

func bindJSON(c *gin.Context, req any, messages bindMessages) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, resolveBindError(err, messages))
		return false
	}
	return true
}

func resolveBindError(err error, messages bindMessages) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgInvalidBody
	}
	for _, verr := range verrs {
		if fieldMsgs, ok := messages[verr.Field()]; ok {
			if msg, ok := fieldMsgs[verr.Tag()]; ok {
				return msg
			}
		}
	}
	for _, verr := range verrs {
		if verr.Tag() == "required" {
			return msgMissingFields
		}
	}
	return msgInvalidBody
}
