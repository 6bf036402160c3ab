package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

func markTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a :memory: database exists per connection, so keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Course{}, &models.Batch{}, &models.Paper{},
		&models.Student{}, &models.StudentMark{},
	))
	return db
}

func seedMarkFixtures(t *testing.T, db *gorm.DB) (*models.Batch, *models.Paper, *models.Student, *models.Student) {
	t.Helper()
	course := &models.Course{Name: "Master of Computer Applications", CourseID: "MCA-FT"}
	require.NoError(t, db.Create(course).Error)
	batch := &models.Batch{CourseID: course.ID, Name: "2023-A", Year: "2023-2025", IsActive: true}
	require.NoError(t, db.Create(batch).Error)
	paper := &models.Paper{Code: "MCA101", Name: "Programming Fundamentals I", MaxMarks: 100}
	require.NoError(t, db.Create(paper).Error)
	alice := &models.Student{BatchID: batch.ID, Regno: "S2023001", Name: "Alice Thomas", IsActive: true}
	require.NoError(t, db.Create(alice).Error)
	bob := &models.Student{BatchID: batch.ID, Regno: "S2023002", Name: "Bob Mathew", IsActive: true}
	require.NoError(t, db.Create(bob).Error)
	return batch, paper, alice, bob
}

func TestMarkRepository_UniqueTupleIndex(t *testing.T) {
	db := markTestDB(t)
	repo := NewMarkRepository(db)
	batch, paper, alice, _ := seedMarkFixtures(t, db)

	first := &models.StudentMark{
		StudentID: alice.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 60,
	}
	require.NoError(t, repo.Create(first))

	dup := &models.StudentMark{
		StudentID: alice.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 70,
	}
	err := repo.Create(dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMarkRepository_RegnoBeatsQuery(t *testing.T) {
	db := markTestDB(t)
	repo := NewMarkRepository(db)
	batch, paper, alice, bob := seedMarkFixtures(t, db)

	require.NoError(t, repo.Create(&models.StudentMark{
		StudentID: alice.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 60,
	}))
	require.NoError(t, repo.Create(&models.StudentMark{
		StudentID: bob.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 40,
	}))

	// regno is exact; the query would otherwise match both students
	marks, err := repo.ListAll(MarkFilter{Regno: "s2023002", Query: "S2023"})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "S2023002", marks[0].Student.Regno)
}

func TestMarkRepository_QuerySearchesJoinedColumns(t *testing.T) {
	db := markTestDB(t)
	repo := NewMarkRepository(db)
	batch, paper, alice, _ := seedMarkFixtures(t, db)

	require.NoError(t, repo.Create(&models.StudentMark{
		StudentID: alice.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID, Marks: 60,
	}))

	for _, q := range []string{"alice", "mca101", "programming", "internal-i", "computer applications"} {
		marks, err := repo.ListAll(MarkFilter{Query: q})
		require.NoError(t, err)
		assert.Len(t, marks, 1, "query %q", q)
	}

	marks, err := repo.ListAll(MarkFilter{Query: "nomatch"})
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestMarkRepository_List_PageClamping(t *testing.T) {
	db := markTestDB(t)
	repo := NewMarkRepository(db)
	batch, paper, alice, _ := seedMarkFixtures(t, db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		require.NoError(t, db.Create(&models.StudentMark{
			StudentID: alice.ID,
			PaperID:   paper.ID,
			ExamType:  "Exam-" + string(rune('A'+i)),
			BatchID:   batch.ID,
			Marks:     50,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	marks, pg, err := repo.List(MarkFilter{}, 99, MarkPageSize)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 2, pg.TotalPages)
	assert.Equal(t, int64(15), pg.TotalItems)
	assert.Len(t, marks, 3)
}

func TestMarkRepository_ListByStudent_NewestFirst(t *testing.T) {
	db := markTestDB(t)
	repo := NewMarkRepository(db)
	batch, paper, alice, _ := seedMarkFixtures(t, db)

	now := time.Now()
	require.NoError(t, db.Create(&models.StudentMark{
		StudentID: alice.ID, PaperID: paper.ID, ExamType: "Internal-I", BatchID: batch.ID,
		Marks: 60, CreatedAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.StudentMark{
		StudentID: alice.ID, PaperID: paper.ID, ExamType: "Internal-II", BatchID: batch.ID,
		Marks: 70, CreatedAt: now,
	}).Error)

	marks, err := repo.ListByStudent(alice.ID)
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, "Internal-II", marks[0].ExamType)
	assert.Equal(t, paper.Code, marks[0].Paper.Code)
}
