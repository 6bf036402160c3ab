package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// StudentHandler serves the student CRUD endpoints.
type StudentHandler struct {
	studentService *services.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// GET /api/students: paginated listing searched across regno, name,
// batch and course.
func (h *StudentHandler) List(c *gin.Context) {
	students, pg, err := h.studentService.List(c.Query("query"), queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students, "pagination": pg})
}

// GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	student, err := h.studentService.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student})
}

// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var in services.StudentInput
	if !bindJSON(c, &in) {
		return
	}
	student, err := h.studentService.Create(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": student})
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.StudentInput
	if !bindJSON(c, &in) {
		return
	}
	student, err := h.studentService.Update(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student})
}

// DELETE /api/students/:id: removes the student and all of their marks.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.studentService.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "student deleted"})
}
