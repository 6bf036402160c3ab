package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

// CourseRepository is the data access layer for courses.
type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uint) (*models.Course, error)
	Update(course *models.Course) error
	Delete(id uint) error
	List(query string, page int) ([]models.Course, Pagination, error)
	ListAll(query string) ([]models.Course, error)
	CountByName(name string, excludeID uint) (int64, error)
	CountByCourseID(courseID string, excludeID uint) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Course{}, "id = ?", id).Error
}

func (r *courseRepository) filtered(query string) *gorm.DB {
	tx := r.db.Model(&models.Course{})
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(courseid) LIKE ?", like, like)
	}
	return tx
}

// List returns one page of courses ordered by course ID, optionally
// filtered by a case-insensitive substring query.
func (r *courseRepository) List(query string, page int) ([]models.Course, Pagination, error) {
	var total int64
	if err := r.filtered(query).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	pg := NewPagination(page, DefaultPageSize, total)

	var courses []models.Course
	err := r.filtered(query).
		Order("courseid").
		Offset(pg.Offset()).
		Limit(pg.PageSize).
		Find(&courses).Error
	return courses, pg, err
}

// ListAll returns every matching course without pagination, for exports.
func (r *courseRepository) ListAll(query string) ([]models.Course, error) {
	var courses []models.Course
	err := r.filtered(query).Order("courseid").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) CountByName(name string, excludeID uint) (int64, error) {
	var count int64
	tx := r.db.Model(&models.Course{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count, err
}

func (r *courseRepository) CountByCourseID(courseID string, excludeID uint) (int64, error) {
	var count int64
	tx := r.db.Model(&models.Course{}).Where("courseid = ?", courseID)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count, err
}
