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

// PaperService implements paper CRUD with validation and delete protection.
type PaperService struct {
	paperRepo repository.PaperRepository
	markRepo  repository.MarkRepository
}

// NewPaperService creates a new paper service.
func NewPaperService(paperRepo repository.PaperRepository, markRepo repository.MarkRepository) *PaperService {
	return &PaperService{paperRepo: paperRepo, markRepo: markRepo}
}

// PaperInput is the create/update payload for a paper. Max marks must be a
// positive integer no greater than 1000.
type PaperInput struct {
	Code      string `json:"code" validate:"required,paper_code"`
	Name      string `json:"name" validate:"required,max=120"`
	PaperType string `json:"paper_type" validate:"max=30"`
	MaxMarks  int    `json:"max_marks" validate:"required,gt=0,lte=1000"`
}

func (in *PaperInput) normalize() {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.PaperType = strings.TrimSpace(in.PaperType)
}

func (s *PaperService) validate(in PaperInput, excludeID uint) error {
	if fe := validation.Struct(in); fe != nil {
		return NewValidationError(fe)
	}

	fe := validation.FieldErrors{}
	if n, err := s.paperRepo.CountByCode(in.Code, excludeID); err != nil {
		return fmt.Errorf("failed to check paper code: %w", err)
	} else if n > 0 {
		fe.Add("code", "a paper with this code already exists")
	}
	if !fe.Empty() {
		return NewValidationError(fe)
	}
	return nil
}

// Create validates and persists a new paper.
func (s *PaperService) Create(in PaperInput) (*models.Paper, error) {
	in.normalize()
	if err := s.validate(in, 0); err != nil {
		return nil, err
	}

	paper := &models.Paper{
		Code:      in.Code,
		Name:      in.Name,
		PaperType: in.PaperType,
		MaxMarks:  in.MaxMarks,
	}
	if err := s.paperRepo.Create(paper); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a paper with this code already exists")
		}
		return nil, fmt.Errorf("failed to create paper: %w", err)
	}
	return paper, nil
}

// Get returns the paper by ID.
func (s *PaperService) Get(id uint) (*models.Paper, error) {
	paper, err := s.paperRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("paper")
		}
		return nil, fmt.Errorf("failed to get paper: %w", err)
	}
	return paper, nil
}

// Update validates and persists changes to an existing paper.
func (s *PaperService) Update(id uint, in PaperInput) (*models.Paper, error) {
	paper, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.validate(in, id); err != nil {
		return nil, err
	}

	paper.Code = in.Code
	paper.Name = in.Name
	paper.PaperType = in.PaperType
	paper.MaxMarks = in.MaxMarks
	if err := s.paperRepo.Update(paper); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a paper with this code already exists")
		}
		return nil, fmt.Errorf("failed to update paper: %w", err)
	}
	return paper, nil
}

// Delete removes a paper. Deletion is blocked while marks reference it.
func (s *PaperService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	n, err := s.markRepo.CountByPaper(id)
	if err != nil {
		return fmt.Errorf("failed to check paper references: %w", err)
	}
	if n > 0 {
		return NewConflictError("paper cannot be deleted while marks reference it")
	}

	if err := s.paperRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete paper: %w", err)
	}
	return nil
}

// List returns one page of papers matching the optional query.
func (s *PaperService) List(query string, page int) ([]models.Paper, repository.Pagination, error) {
	return s.paperRepo.List(query, page)
}
