package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// PaperHandler serves the paper CRUD endpoints.
type PaperHandler struct {
	paperService *services.PaperService
}

// NewPaperHandler creates a new paper handler.
func NewPaperHandler(paperService *services.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// GET /api/papers: paginated listing with an optional substring query.
func (h *PaperHandler) List(c *gin.Context) {
	papers, pg, err := h.paperService.List(c.Query("query"), queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"papers": papers, "pagination": pg})
}

// GET /api/papers/:id
func (h *PaperHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	paper, err := h.paperService.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paper": paper})
}

// POST /api/papers
func (h *PaperHandler) Create(c *gin.Context) {
	var in services.PaperInput
	if !bindJSON(c, &in) {
		return
	}
	paper, err := h.paperService.Create(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"paper": paper})
}

// PUT /api/papers/:id
func (h *PaperHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.PaperInput
	if !bindJSON(c, &in) {
		return
	}
	paper, err := h.paperService.Update(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paper": paper})
}

// DELETE /api/papers/:id
func (h *PaperHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.paperService.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "paper deleted"})
}
