package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

// PaperRepository is the data access layer for papers.
type PaperRepository interface {
	Create(paper *models.Paper) error
	GetByID(id uint) (*models.Paper, error)
	Update(paper *models.Paper) error
	Delete(id uint) error
	List(query string, page int) ([]models.Paper, Pagination, error)
	ListAll(query string) ([]models.Paper, error)
	CountByCode(code string, excludeID uint) (int64, error)
}

type paperRepository struct {
	db *gorm.DB
}

// NewPaperRepository creates a new paper repository.
func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(paper *models.Paper) error {
	return r.db.Create(paper).Error
}

func (r *paperRepository) GetByID(id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := r.db.First(&paper, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) Update(paper *models.Paper) error {
	return r.db.Save(paper).Error
}

func (r *paperRepository) Delete(id uint) error {
	return r.db.Delete(&models.Paper{}, "id = ?", id).Error
}

func (r *paperRepository) filtered(query string) *gorm.DB {
	tx := r.db.Model(&models.Paper{})
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(paper_type) LIKE ?",
			like, like, like,
		)
	}
	return tx
}

// List returns one page of papers ordered by code then name.
func (r *paperRepository) List(query string, page int) ([]models.Paper, Pagination, error) {
	var total int64
	if err := r.filtered(query).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	pg := NewPagination(page, DefaultPageSize, total)

	var papers []models.Paper
	err := r.filtered(query).
		Order("code, name").
		Offset(pg.Offset()).
		Limit(pg.PageSize).
		Find(&papers).Error
	return papers, pg, err
}

// ListAll returns every matching paper without pagination, for exports.
func (r *paperRepository) ListAll(query string) ([]models.Paper, error) {
	var papers []models.Paper
	err := r.filtered(query).Order("code, name").Find(&papers).Error
	return papers, err
}

func (r *paperRepository) CountByCode(code string, excludeID uint) (int64, error) {
	var count int64
	tx := r.db.Model(&models.Paper{}).Where("code = ?", code)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count, err
}
