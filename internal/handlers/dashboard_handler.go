package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// DashboardHandler serves the student dashboard statistics.
type DashboardHandler struct {
	studentService *services.StudentService
	statsService   *services.StatsService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(studentService *services.StudentService, statsService *services.StatsService) *DashboardHandler {
	return &DashboardHandler{studentService: studentService, statsService: statsService}
}

// GET /api/dashboard: the student's own statistics. An optional regno
// parameter looks up another student's dashboard; when it matches nothing
// the caller's own record is kept. No linked student record yields an
// empty dashboard, not an error.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	requestedRegno := strings.TrimSpace(c.Query("regno"))

	student, err := h.studentService.ResolveByUser(user.Username, user.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	if requestedRegno != "" {
		requested, err := h.studentService.FindByRegno(requestedRegno)
		if err != nil {
			writeError(c, err)
			return
		}
		if requested != nil {
			student = requested
		}
	}

	if student == nil {
		c.JSON(http.StatusOK, gin.H{
			"student":         nil,
			"requested_regno": requestedRegno,
			"avg_mark":        0,
			"total_tests":     0,
			"pass_percent":    0,
			"subject_stats":   []services.SubjectStat{},
			"last_marks":      []interface{}{},
		})
		return
	}

	stats, err := h.statsService.ForStudent(student.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	// rounding happens here, at the presentation boundary
	subjects := make([]services.SubjectStat, len(stats.SubjectStats))
	for i, s := range stats.SubjectStats {
		s.Average = services.Round(s.Average, 2)
		subjects[i] = s
	}

	c.JSON(http.StatusOK, gin.H{
		"student":         student,
		"requested_regno": requestedRegno,
		"avg_mark":        services.Round(stats.Average, 2),
		"total_tests":     stats.TotalTests,
		"pass_percent":    services.Round(stats.PassPercent, 1),
		"subject_stats":   subjects,
		"last_marks":      stats.RecentMarks,
	})
}
