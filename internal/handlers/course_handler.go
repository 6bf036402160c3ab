package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// CourseHandler serves the course CRUD endpoints.
type CourseHandler struct {
	courseService *services.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// GET /api/courses: paginated listing with an optional substring query.
func (h *CourseHandler) List(c *gin.Context) {
	courses, pg, err := h.courseService.List(c.Query("query"), queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "pagination": pg})
}

// GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	course, err := h.courseService.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}

// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var in services.CourseInput
	if !bindJSON(c, &in) {
		return
	}
	course, err := h.courseService.Create(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"course": course})
}

// PUT /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CourseInput
	if !bindJSON(c, &in) {
		return
	}
	course, err := h.courseService.Update(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}

// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.courseService.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "course deleted"})
}
