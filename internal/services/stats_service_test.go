package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
)

func seedMark(t *testing.T, db *gorm.DB, student *models.Student, paper *models.Paper, batch *models.Batch, examType string, marks float64, at time.Time) {
	t.Helper()
	m := &models.StudentMark{
		StudentID: student.ID,
		PaperID:   paper.ID,
		ExamType:  examType,
		BatchID:   batch.ID,
		Marks:     marks,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(m).Error)
}

func TestStatsService_ForStudent(t *testing.T) {
	db := testDB(t)
	_, batch, paper, student := seedAcademics(t, db)
	svc := NewStatsService(repository.NewMarkRepository(db))

	now := time.Now()
	// 40/100 passes the 35% threshold, 30/100 does not
	seedMark(t, db, student, paper, batch, "Internal-I", 40, now.Add(-2*time.Hour))
	seedMark(t, db, student, paper, batch, "Internal-II", 30, now.Add(-time.Hour))

	stats, err := svc.ForStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTests)
	assert.InDelta(t, 35.0, stats.Average, 1e-9)
	assert.InDelta(t, 50.0, stats.PassPercent, 1e-9)

	require.Len(t, stats.SubjectStats, 1)
	assert.Equal(t, paper.Name, stats.SubjectStats[0].Paper)
	assert.InDelta(t, 35.0, stats.SubjectStats[0].Average, 1e-9)
	assert.Equal(t, 2, stats.SubjectStats[0].Taken)

	require.Len(t, stats.RecentMarks, 2)
	assert.Equal(t, "Internal-II", stats.RecentMarks[0].ExamType)
}

func TestStatsService_ForStudent_NoMarks(t *testing.T) {
	db := testDB(t)
	_, _, _, student := seedAcademics(t, db)
	svc := NewStatsService(repository.NewMarkRepository(db))

	stats, err := svc.ForStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalTests)
	assert.Zero(t, stats.Average)
	assert.Zero(t, stats.PassPercent)
	assert.Empty(t, stats.SubjectStats)
	assert.Empty(t, stats.RecentMarks)
}

func TestStatsService_ForStudent_ExactThresholdPasses(t *testing.T) {
	db := testDB(t)
	_, batch, paper, student := seedAcademics(t, db)
	svc := NewStatsService(repository.NewMarkRepository(db))

	seedMark(t, db, student, paper, batch, "Internal-I", 35, time.Now())

	stats, err := svc.ForStudent(student.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.PassPercent, 1e-9)
}

func TestStatsService_ForStudent_SubjectStatsTopSix(t *testing.T) {
	db := testDB(t)
	_, batch, _, student := seedAcademics(t, db)
	svc := NewStatsService(repository.NewMarkRepository(db))

	now := time.Now()
	for i := 0; i < 8; i++ {
		paper := &models.Paper{
			Code:     fmt.Sprintf("MCA2%02d", i),
			Name:     fmt.Sprintf("Elective %d", i),
			MaxMarks: 100,
		}
		require.NoError(t, db.Create(paper).Error)
		seedMark(t, db, student, paper, batch, "Internal-I", float64(40+i*5), now.Add(time.Duration(i)*time.Minute))
	}

	stats, err := svc.ForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, stats.SubjectStats, 6)

	// highest average first, and the two weakest papers are cut
	assert.Equal(t, "Elective 7", stats.SubjectStats[0].Paper)
	assert.InDelta(t, 75.0, stats.SubjectStats[0].Average, 1e-9)
	assert.Equal(t, "Elective 2", stats.SubjectStats[5].Paper)

	// recent marks keep only the five newest entries
	require.Len(t, stats.RecentMarks, 5)
	assert.Equal(t, "MCA207", stats.RecentMarks[0].Paper.Code)
}

func TestStatsService_ForStudent_SubjectTieBreaksByName(t *testing.T) {
	db := testDB(t)
	_, batch, _, student := seedAcademics(t, db)
	svc := NewStatsService(repository.NewMarkRepository(db))

	pb := &models.Paper{Code: "MCA210", Name: "Banana Studies", MaxMarks: 100}
	pa := &models.Paper{Code: "MCA211", Name: "Apple Studies", MaxMarks: 100}
	require.NoError(t, db.Create(pb).Error)
	require.NoError(t, db.Create(pa).Error)

	now := time.Now()
	seedMark(t, db, student, pb, batch, "Internal-I", 50, now)
	seedMark(t, db, student, pa, batch, "Internal-I", 50, now)

	stats, err := svc.ForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, stats.SubjectStats, 2)
	assert.Equal(t, "Apple Studies", stats.SubjectStats[0].Paper)
	assert.Equal(t, "Banana Studies", stats.SubjectStats[1].Paper)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 35.56, Round(35.556, 2))
	assert.Equal(t, 66.7, Round(66.666, 1))
	assert.Equal(t, 0.0, Round(0, 2))
}
