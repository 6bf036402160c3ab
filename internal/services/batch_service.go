package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/validation"
)

// BatchService implements batch CRUD with validation and delete protection.
type BatchService struct {
	batchRepo   repository.BatchRepository
	courseRepo  repository.CourseRepository
	studentRepo repository.StudentRepository
	markRepo    repository.MarkRepository
}

// NewBatchService creates a new batch service.
func NewBatchService(
	batchRepo repository.BatchRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	markRepo repository.MarkRepository,
) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		markRepo:    markRepo,
	}
}

// BatchInput is the create/update payload for a batch. The name is trimmed
// of surrounding whitespace before validation.
type BatchInput struct {
	CourseID uint   `json:"course_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=32"`
	Year     string `json:"year" validate:"required,academic_year"`
	IsActive bool   `json:"is_active"`
}

func (in *BatchInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Year = strings.TrimSpace(in.Year)
}

func (s *BatchService) validate(in BatchInput, excludeID uint) error {
	if fe := validation.Struct(in); fe != nil {
		return NewValidationError(fe)
	}

	fe := validation.FieldErrors{}
	if _, err := s.courseRepo.GetByID(in.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fe.Add("course_id", "course not found")
		} else {
			return fmt.Errorf("failed to look up course: %w", err)
		}
	}
	if n, err := s.batchRepo.CountByCourseAndName(in.CourseID, in.Name, excludeID); err != nil {
		return fmt.Errorf("failed to check batch name: %w", err)
	} else if n > 0 {
		fe.Add("name", "a batch with this name already exists for the course")
	}
	if !fe.Empty() {
		return NewValidationError(fe)
	}
	return nil
}

// Create validates and persists a new batch.
func (s *BatchService) Create(in BatchInput) (*models.Batch, error) {
	in.normalize()
	if err := s.validate(in, 0); err != nil {
		return nil, err
	}

	batch := &models.Batch{
		CourseID: in.CourseID,
		Name:     in.Name,
		Year:     in.Year,
		IsActive: in.IsActive,
	}
	if err := s.batchRepo.Create(batch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a batch with this name already exists for the course")
		}
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return s.Get(batch.ID)
}

// Get returns the batch by ID with its course preloaded.
func (s *BatchService) Get(id uint) (*models.Batch, error) {
	batch, err := s.batchRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("batch")
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return batch, nil
}

// Update validates and persists changes to an existing batch.
func (s *BatchService) Update(id uint, in BatchInput) (*models.Batch, error) {
	batch, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.validate(in, id); err != nil {
		return nil, err
	}

	batch.CourseID = in.CourseID
	batch.Name = in.Name
	batch.Year = in.Year
	batch.IsActive = in.IsActive
	if err := s.batchRepo.Update(batch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a batch with this name already exists for the course")
		}
		return nil, fmt.Errorf("failed to update batch: %w", err)
	}
	return s.Get(id)
}

// Delete removes a batch. Deletion is blocked while students or marks
// reference it.
func (s *BatchService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if n, err := s.studentRepo.CountByBatch(id); err != nil {
		return fmt.Errorf("failed to check batch references: %w", err)
	} else if n > 0 {
		return NewConflictError("batch cannot be deleted while students reference it")
	}
	if n, err := s.markRepo.CountByBatch(id); err != nil {
		return fmt.Errorf("failed to check batch references: %w", err)
	} else if n > 0 {
		return NewConflictError("batch cannot be deleted while marks reference it")
	}

	if err := s.batchRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	return nil
}

// List returns one page of batches matching the optional query.
func (s *BatchService) List(query string, page int) ([]models.Batch, repository.Pagination, error) {
	return s.batchRepo.List(query, page)
}
