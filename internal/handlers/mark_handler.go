package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// MarkHandler serves the mark CRUD endpoints plus the caller's own marks.
type MarkHandler struct {
	markService    *services.MarkService
	studentService *services.StudentService
}

// NewMarkHandler creates a new mark handler.
func NewMarkHandler(markService *services.MarkService, studentService *services.StudentService) *MarkHandler {
	return &MarkHandler{markService: markService, studentService: studentService}
}

// GET /api/marks: paginated listing, newest first. Accepts a substring
// query plus student_regno, student_id, batch_id and paper_id filters.
func (h *MarkHandler) List(c *gin.Context) {
	filter := repository.MarkFilter{
		Query:     c.Query("query"),
		Regno:     c.Query("student_regno"),
		StudentID: queryUint(c, "student_id"),
		BatchID:   queryUint(c, "batch_id"),
		PaperID:   queryUint(c, "paper_id"),
	}
	marks, pg, err := h.markService.List(filter, queryPage(c), repository.MarkPageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marks": marks, "pagination": pg})
}

// GET /api/marks/my: resolves the caller to a student by regno-as-username
// and then email; 404 when no student record is linked to the account.
func (h *MarkHandler) MyMarks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	student, err := h.studentService.ResolveByUser(user.Username, user.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No student record found for this user."})
		return
	}

	filter := repository.MarkFilter{StudentID: student.ID}
	marks, pg, err := h.markService.List(filter, queryPage(c), repository.MyMarksPageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student, "marks": marks, "pagination": pg})
}

// GET /api/marks/:id
func (h *MarkHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	mark, err := h.markService.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mark": mark})
}

// POST /api/marks
func (h *MarkHandler) Create(c *gin.Context) {
	var in services.MarkInput
	if !bindJSON(c, &in) {
		return
	}
	mark, err := h.markService.Create(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mark": mark})
}

// PUT /api/marks/:id
func (h *MarkHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.MarkInput
	if !bindJSON(c, &in) {
		return
	}
	mark, err := h.markService.Update(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mark": mark})
}

// DELETE /api/marks/:id
func (h *MarkHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.markService.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "mark deleted"})
}
