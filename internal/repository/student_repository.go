package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

// StudentRepository is the data access layer for students.
type StudentRepository interface {
	Create(student *models.Student) error
	GetByID(id uint) (*models.Student, error)
	GetByRegno(regno string) (*models.Student, error)
	GetByEmail(email string) (*models.Student, error)
	Update(student *models.Student) error
	DeleteCascade(id uint) error
	List(query string, page int) ([]models.Student, Pagination, error)
	ListAll(query string) ([]models.Student, error)
	CountByBatch(batchID uint) (int64, error)
	CountByRegno(regno string, excludeID uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.Preload("Batch.Course").First(&student, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByRegno finds a student by case-insensitive exact registration number.
func (r *studentRepository) GetByRegno(regno string) (*models.Student, error) {
	var student models.Student
	err := r.db.Preload("Batch.Course").
		Where("LOWER(regno) = ?", strings.ToLower(regno)).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByEmail finds a student by case-insensitive exact email.
func (r *studentRepository) GetByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := r.db.Preload("Batch.Course").
		Where("email IS NOT NULL AND LOWER(email) = ?", strings.ToLower(email)).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Update(student *models.Student) error {
	return r.db.Omit(clause.Associations).Save(student).Error
}

// DeleteCascade removes the student together with all of their marks.
// Both deletes commit or roll back as one unit.
func (r *studentRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.StudentMark{}, "student_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Student{}, "id = ?", id).Error
	})
}

func (r *studentRepository) filtered(query string) *gorm.DB {
	tx := r.db.Model(&models.Student{}).
		Joins("JOIN batches ON batches.id = students.batch_id").
		Joins("JOIN courses ON courses.id = batches.course_id")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(students.regno) LIKE ? OR LOWER(students.name) LIKE ? OR LOWER(batches.name) LIKE ? OR LOWER(courses.name) LIKE ?",
			like, like, like, like,
		)
	}
	return tx
}

// List returns one page of students ordered by regno, optionally filtered
// by a case-insensitive substring query across regno, name, batch and course.
func (r *studentRepository) List(query string, page int) ([]models.Student, Pagination, error) {
	var total int64
	if err := r.filtered(query).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	pg := NewPagination(page, DefaultPageSize, total)

	var students []models.Student
	err := r.filtered(query).
		Preload("Batch.Course").
		Order("students.regno").
		Offset(pg.Offset()).
		Limit(pg.PageSize).
		Find(&students).Error
	return students, pg, err
}

// ListAll returns every matching student without pagination, for exports.
func (r *studentRepository) ListAll(query string) ([]models.Student, error) {
	var students []models.Student
	err := r.filtered(query).
		Preload("Batch.Course").
		Order("students.regno").
		Find(&students).Error
	return students, err
}

func (r *studentRepository) CountByBatch(batchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Student{}).Where("batch_id = ?", batchID).Count(&count).Error
	return count, err
}

func (r *studentRepository) CountByRegno(regno string, excludeID uint) (int64, error) {
	var count int64
	tx := r.db.Model(&models.Student{}).Where("LOWER(regno) = ?", strings.ToLower(regno))
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count, err
}
