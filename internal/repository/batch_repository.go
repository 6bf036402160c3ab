package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

// BatchRepository is the data access layer for batches.
type BatchRepository interface {
	Create(batch *models.Batch) error
	GetByID(id uint) (*models.Batch, error)
	Update(batch *models.Batch) error
	Delete(id uint) error
	List(query string, page int) ([]models.Batch, Pagination, error)
	ListAll(query string) ([]models.Batch, error)
	CountByCourse(courseID uint) (int64, error)
	CountByCourseAndName(courseID uint, name string, excludeID uint) (int64, error)
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(batch *models.Batch) error {
	return r.db.Create(batch).Error
}

func (r *batchRepository) GetByID(id uint) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.Preload("Course").First(&batch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) Update(batch *models.Batch) error {
	return r.db.Omit(clause.Associations).Save(batch).Error
}

func (r *batchRepository) Delete(id uint) error {
	return r.db.Delete(&models.Batch{}, "id = ?", id).Error
}

func (r *batchRepository) filtered(query string) *gorm.DB {
	tx := r.db.Model(&models.Batch{}).
		Joins("JOIN courses ON courses.id = batches.course_id")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(batches.name) LIKE ? OR LOWER(courses.courseid) LIKE ? OR LOWER(courses.name) LIKE ?",
			like, like, like,
		)
	}
	return tx
}

// List returns one page of batches ordered by course ID then batch name,
// optionally filtered by a case-insensitive substring query across batch
// name, course code and course name.
func (r *batchRepository) List(query string, page int) ([]models.Batch, Pagination, error) {
	var total int64
	if err := r.filtered(query).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	pg := NewPagination(page, DefaultPageSize, total)

	var batches []models.Batch
	err := r.filtered(query).
		Preload("Course").
		Order("courses.courseid, batches.name").
		Offset(pg.Offset()).
		Limit(pg.PageSize).
		Find(&batches).Error
	return batches, pg, err
}

// ListAll returns every matching batch without pagination, for exports.
func (r *batchRepository) ListAll(query string) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.filtered(query).
		Preload("Course").
		Order("courses.courseid, batches.name").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Batch{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *batchRepository) CountByCourseAndName(courseID uint, name string, excludeID uint) (int64, error) {
	var count int64
	tx := r.db.Model(&models.Batch{}).
		Where("course_id = ? AND LOWER(name) = ?", courseID, strings.ToLower(name))
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count, err
}
