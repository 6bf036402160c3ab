package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/validation"
)

// writeError maps service errors to HTTP responses. Validation failures
// carry the field -> messages map; anything unrecognized becomes a generic
// 500 with no detail leaked.
func writeError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var ce *services.ConflictError
	var nfe *services.NotFoundError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
	case errors.As(err, &ce):
		fields := validation.FieldErrors{}
		fields.Add(validation.NonFieldKey, ce.Message)
		c.JSON(http.StatusConflict, gin.H{"errors": fields})
	case errors.As(err, &nfe):
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON decodes the request body, reporting malformed payloads as 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// queryPage parses the page query parameter, defaulting to the first page.
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// queryUint parses an optional numeric query parameter, 0 when absent.
func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
