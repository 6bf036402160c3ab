package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// ExportHandler serves the CSV download endpoints.
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func setCSVHeaders(c *gin.Context, filename string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}

// GET /api/export/courses
func (h *ExportHandler) Courses(c *gin.Context) {
	setCSVHeaders(c, services.Filename("courses"))
	if err := h.exportService.WriteCourses(c.Writer, c.Query("query")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}

// GET /api/export/batches
func (h *ExportHandler) Batches(c *gin.Context) {
	setCSVHeaders(c, services.Filename("batches"))
	if err := h.exportService.WriteBatches(c.Writer, c.Query("query")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}

// GET /api/export/papers
func (h *ExportHandler) Papers(c *gin.Context) {
	setCSVHeaders(c, services.Filename("papers"))
	if err := h.exportService.WritePapers(c.Writer, c.Query("query")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}

// GET /api/export/students
func (h *ExportHandler) Students(c *gin.Context) {
	setCSVHeaders(c, services.Filename("students"))
	if err := h.exportService.WriteStudents(c.Writer, c.Query("query")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}

// GET /api/export/marks: accepts regno (case-insensitive exact) or query
// (substring across student/paper/exam/batch/course); the regno filter wins.
func (h *ExportHandler) Marks(c *gin.Context) {
	regno := c.Query("regno")
	query := c.Query("query")
	setCSVHeaders(c, services.MarksFilename(regno, query))
	if err := h.exportService.WriteMarks(c.Writer, regno, query); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}
