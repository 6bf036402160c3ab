package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// BatchHandler serves the batch CRUD endpoints.
type BatchHandler struct {
	batchService *services.BatchService
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(batchService *services.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// GET /api/batches: paginated listing with an optional substring query.
func (h *BatchHandler) List(c *gin.Context) {
	batches, pg, err := h.batchService.List(c.Query("query"), queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches, "pagination": pg})
}

// GET /api/batches/:id
func (h *BatchHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	batch, err := h.batchService.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

// POST /api/batches
func (h *BatchHandler) Create(c *gin.Context) {
	var in services.BatchInput
	if !bindJSON(c, &in) {
		return
	}
	batch, err := h.batchService.Create(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"batch": batch})
}

// PUT /api/batches/:id
func (h *BatchHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.BatchInput
	if !bindJSON(c, &in) {
		return
	}
	batch, err := h.batchService.Update(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

// DELETE /api/batches/:id
func (h *BatchHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.batchService.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "batch deleted"})
}
