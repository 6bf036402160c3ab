package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

func TestDashboard(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "S2023001", models.RoleStudent)
	_, batch, paper, student := app.seedAcademics(t)

	// 40/100 passes the 35% threshold, 30/100 does not
	require.NoError(t, app.db.Create(&models.StudentMark{
		StudentID: student.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 40,
	}).Error)
	require.NoError(t, app.db.Create(&models.StudentMark{
		StudentID: student.ID, PaperID: paper.ID, ExamType: "Internal-II", BatchID: batch.ID, Marks: 30,
	}).Error)

	w := app.request(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, 35.0, body["avg_mark"])
	assert.Equal(t, 2.0, body["total_tests"])
	assert.Equal(t, 50.0, body["pass_percent"])
	assert.Len(t, body["subject_stats"].([]interface{}), 1)
	assert.Len(t, body["last_marks"].([]interface{}), 2)
}

func TestDashboard_NoLinkedStudent(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "unlinked_user", models.RoleStudent)

	w := app.request(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Nil(t, body["student"])
	assert.Equal(t, 0.0, body["avg_mark"])
	assert.Equal(t, 0.0, body["total_tests"])
	assert.Empty(t, body["last_marks"])
}

func TestDashboard_RegnoLookup(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "S2023001", models.RoleStudent)
	_, batch, paper, _ := app.seedAcademics(t)

	other := &models.Student{BatchID: batch.ID, Regno: "S2023002", Name: "Bob Mathew", IsActive: true}
	require.NoError(t, app.db.Create(other).Error)
	require.NoError(t, app.db.Create(&models.StudentMark{
		StudentID: other.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 90,
	}).Error)

	w := app.request(t, http.MethodGet, "/api/dashboard?regno=S2023002", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	resolved := body["student"].(map[string]interface{})
	assert.Equal(t, "S2023002", resolved["regno"])
	assert.Equal(t, "S2023002", body["requested_regno"])
	assert.Equal(t, 90.0, body["avg_mark"])
}

func TestDashboard_UnknownRegnoKeepsOwnRecord(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "S2023001", models.RoleStudent)
	app.seedAcademics(t)

	w := app.request(t, http.MethodGet, "/api/dashboard?regno=NOSUCH", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	resolved := body["student"].(map[string]interface{})
	assert.Equal(t, "S2023001", resolved["regno"])
}
