package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

// MarkFilter narrows a mark listing. Query is a substring search across
// student, paper, exam type, batch and course; Regno is a case-insensitive
// exact match and takes precedence over Query in exports.
type MarkFilter struct {
	Query     string
	Regno     string
	StudentID uint
	BatchID   uint
	PaperID   uint
}

// MarkRepository is the data access layer for student marks.
type MarkRepository interface {
	Create(mark *models.StudentMark) error
	GetByID(id uint) (*models.StudentMark, error)
	Update(mark *models.StudentMark) error
	Delete(id uint) error
	List(filter MarkFilter, page, pageSize int) ([]models.StudentMark, Pagination, error)
	ListAll(filter MarkFilter) ([]models.StudentMark, error)
	ListByStudent(studentID uint) ([]models.StudentMark, error)
	CountByTuple(studentID, paperID uint, examType string, batchID, excludeID uint) (int64, error)
	CountByPaper(paperID uint) (int64, error)
	CountByBatch(batchID uint) (int64, error)
}

type markRepository struct {
	db *gorm.DB
}

// NewMarkRepository creates a new mark repository.
func NewMarkRepository(db *gorm.DB) MarkRepository {
	return &markRepository{db: db}
}

func (r *markRepository) Create(mark *models.StudentMark) error {
	return r.db.Create(mark).Error
}

func (r *markRepository) GetByID(id uint) (*models.StudentMark, error) {
	var mark models.StudentMark
	err := r.db.
		Preload("Student.Batch.Course").
		Preload("Paper").
		Preload("Batch.Course").
		First(&mark, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &mark, nil
}

func (r *markRepository) Update(mark *models.StudentMark) error {
	// Omit associations so a changed FK is not clobbered by a preloaded struct.
	return r.db.Omit(clause.Associations).Save(mark).Error
}

func (r *markRepository) Delete(id uint) error {
	return r.db.Delete(&models.StudentMark{}, "id = ?", id).Error
}

func (r *markRepository) filtered(filter MarkFilter) *gorm.DB {
	tx := r.db.Model(&models.StudentMark{}).
		Joins("JOIN students ON students.id = student_marks.student_id").
		Joins("JOIN papers ON papers.id = student_marks.paper_id").
		Joins("JOIN batches ON batches.id = student_marks.batch_id").
		Joins("JOIN courses ON courses.id = batches.course_id")

	if filter.Regno != "" {
		tx = tx.Where("LOWER(students.regno) = ?", strings.ToLower(filter.Regno))
	} else if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		tx = tx.Where(
			"LOWER(students.regno) LIKE ? OR LOWER(students.name) LIKE ? OR LOWER(papers.code) LIKE ? OR LOWER(papers.name) LIKE ? OR LOWER(student_marks.exam_type) LIKE ? OR LOWER(batches.name) LIKE ? OR LOWER(courses.name) LIKE ?",
			like, like, like, like, like, like, like,
		)
	}
	if filter.StudentID != 0 {
		tx = tx.Where("student_marks.student_id = ?", filter.StudentID)
	}
	if filter.BatchID != 0 {
		tx = tx.Where("student_marks.batch_id = ?", filter.BatchID)
	}
	if filter.PaperID != 0 {
		tx = tx.Where("student_marks.paper_id = ?", filter.PaperID)
	}
	return tx
}

func (r *markRepository) preloadAll(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Student.Batch.Course").
		Preload("Paper").
		Preload("Batch.Course")
}

// List returns one page of marks, newest first.
func (r *markRepository) List(filter MarkFilter, page, pageSize int) ([]models.StudentMark, Pagination, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	pg := NewPagination(page, pageSize, total)

	var marks []models.StudentMark
	err := r.preloadAll(r.filtered(filter)).
		Order("student_marks.created_at DESC").
		Offset(pg.Offset()).
		Limit(pg.PageSize).
		Find(&marks).Error
	return marks, pg, err
}

// ListAll returns every matching mark, newest first, for exports.
func (r *markRepository) ListAll(filter MarkFilter) ([]models.StudentMark, error) {
	var marks []models.StudentMark
	err := r.preloadAll(r.filtered(filter)).
		Order("student_marks.created_at DESC").
		Find(&marks).Error
	return marks, err
}

// ListByStudent returns all of a student's marks with papers preloaded,
// newest first, for the dashboard statistics.
func (r *markRepository) ListByStudent(studentID uint) ([]models.StudentMark, error) {
	var marks []models.StudentMark
	err := r.db.
		Preload("Paper").
		Preload("Batch").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&marks).Error
	return marks, err
}

// CountByTuple counts marks sharing the (student, paper, exam_type, batch)
// tuple, excluding the record identified by excludeID when updating.
func (r *markRepository) CountByTuple(studentID, paperID uint, examType string, batchID, excludeID uint) (int64, error) {
	var count int64
	tx := r.db.Model(&models.StudentMark{}).
		Where("student_id = ? AND paper_id = ? AND exam_type = ? AND batch_id = ?",
			studentID, paperID, examType, batchID)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count, err
}

func (r *markRepository) CountByPaper(paperID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.StudentMark{}).Where("paper_id = ?", paperID).Count(&count).Error
	return count, err
}

func (r *markRepository) CountByBatch(batchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.StudentMark{}).Where("batch_id = ?", batchID).Count(&count).Error
	return count, err
}
