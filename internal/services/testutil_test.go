package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
)

// testDB opens a fresh in-memory database with the full schema migrated.
func testDB(t *testing.T) *gorm.DB {
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
		&models.User{},
		&models.Course{},
		&models.Batch{},
		&models.Paper{},
		&models.Student{},
		&models.StudentMark{},
	))
	return db
}

// testRepos bundles the repositories most service tests need.
type testRepos struct {
	users    repository.UserRepository
	courses  repository.CourseRepository
	batches  repository.BatchRepository
	papers   repository.PaperRepository
	students repository.StudentRepository
	marks    repository.MarkRepository
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		users:    repository.NewUserRepository(db),
		courses:  repository.NewCourseRepository(db),
		batches:  repository.NewBatchRepository(db),
		papers:   repository.NewPaperRepository(db),
		students: repository.NewStudentRepository(db),
		marks:    repository.NewMarkRepository(db),
	}
}

// seedAcademics creates one course, one batch, one 100-mark paper and one
// student, returning them for use as foreign keys.
func seedAcademics(t *testing.T, db *gorm.DB) (*models.Course, *models.Batch, *models.Paper, *models.Student) {
	t.Helper()

	course := &models.Course{Name: "Master of Computer Applications", CourseID: "MCA-FT"}
	require.NoError(t, db.Create(course).Error)

	batch := &models.Batch{CourseID: course.ID, Name: "2023-A", Year: "2023-2025", IsActive: true}
	require.NoError(t, db.Create(batch).Error)

	paper := &models.Paper{Code: "MCA101", Name: "Programming Fundamentals I", PaperType: "Core", MaxMarks: 100}
	require.NoError(t, db.Create(paper).Error)

	student := &models.Student{BatchID: batch.ID, Regno: "S2023001", Name: "Alice Thomas", IsActive: true}
	require.NoError(t, db.Create(student).Error)

	return course, batch, paper, student
}
