package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/validation"
)

// MarkService implements mark CRUD. A mark must stay within the paper's
// maximum and at most one mark may exist per (student, paper, exam_type,
// batch) tuple. The tuple pre-check is best-effort; the store's composite
// unique index is the authoritative guard and its rejection also surfaces
// as a conflict.
type MarkService struct {
	markRepo    repository.MarkRepository
	studentRepo repository.StudentRepository
	paperRepo   repository.PaperRepository
	batchRepo   repository.BatchRepository
}

// NewMarkService creates a new mark service.
func NewMarkService(
	markRepo repository.MarkRepository,
	studentRepo repository.StudentRepository,
	paperRepo repository.PaperRepository,
	batchRepo repository.BatchRepository,
) *MarkService {
	return &MarkService{
		markRepo:    markRepo,
		studentRepo: studentRepo,
		paperRepo:   paperRepo,
		batchRepo:   batchRepo,
	}
}

// MarkInput is the create/update payload for a mark entry.
type MarkInput struct {
	StudentID uint    `json:"student_id" validate:"required"`
	PaperID   uint    `json:"paper_id" validate:"required"`
	ExamType  string  `json:"exam_type" validate:"required,max=32"`
	BatchID   uint    `json:"batch_id" validate:"required"`
	Marks     float64 `json:"marks"`
}

func (in *MarkInput) normalize() {
	in.ExamType = strings.TrimSpace(in.ExamType)
	// marks are stored with fixed 2-decimal precision
	in.Marks = math.Round(in.Marks*100) / 100
}

// validate runs field checks, resolves the referenced rows, and enforces the
// marks bound. The tuple uniqueness check happens separately so it can be
// reported as a conflict rather than a field error.
func (s *MarkService) validate(in MarkInput) error {
	if fe := validation.Struct(in); fe != nil {
		return NewValidationError(fe)
	}

	fe := validation.FieldErrors{}

	if _, err := s.studentRepo.GetByID(in.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fe.Add("student_id", "student not found")
		} else {
			return fmt.Errorf("failed to look up student: %w", err)
		}
	}
	if _, err := s.batchRepo.GetByID(in.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fe.Add("batch_id", "batch not found")
		} else {
			return fmt.Errorf("failed to look up batch: %w", err)
		}
	}

	paper, err := s.paperRepo.GetByID(in.PaperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fe.Add("paper_id", "paper not found")
			paper = nil
		} else {
			return fmt.Errorf("failed to look up paper: %w", err)
		}
	}

	if in.Marks < 0 {
		fe.Add("marks", "marks cannot be negative")
	} else if paper != nil && in.Marks > float64(paper.MaxMarks) {
		fe.Add("marks", fmt.Sprintf("marks cannot exceed the paper max (%d)", paper.MaxMarks))
	}

	if !fe.Empty() {
		return NewValidationError(fe)
	}
	return nil
}

func (s *MarkService) checkTuple(in MarkInput, excludeID uint) error {
	n, err := s.markRepo.CountByTuple(in.StudentID, in.PaperID, in.ExamType, in.BatchID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check mark uniqueness: %w", err)
	}
	if n > 0 {
		return NewConflictError("a mark entry for this student / paper / exam / batch already exists")
	}
	return nil
}

// Create validates and persists a new mark entry.
func (s *MarkService) Create(in MarkInput) (*models.StudentMark, error) {
	in.normalize()
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if err := s.checkTuple(in, 0); err != nil {
		return nil, err
	}

	mark := &models.StudentMark{
		StudentID: in.StudentID,
		PaperID:   in.PaperID,
		ExamType:  in.ExamType,
		BatchID:   in.BatchID,
		Marks:     in.Marks,
	}
	if err := s.markRepo.Create(mark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a mark entry for this student / paper / exam / batch already exists")
		}
		return nil, fmt.Errorf("failed to create mark: %w", err)
	}
	return s.Get(mark.ID)
}

// Get returns the mark by ID with student, paper and batch preloaded.
func (s *MarkService) Get(id uint) (*models.StudentMark, error) {
	mark, err := s.markRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("mark")
		}
		return nil, fmt.Errorf("failed to get mark: %w", err)
	}
	return mark, nil
}

// Update validates and persists changes to an existing mark entry. The
// record being updated is excluded from the tuple uniqueness check.
func (s *MarkService) Update(id uint, in MarkInput) (*models.StudentMark, error) {
	mark, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if err := s.checkTuple(in, id); err != nil {
		return nil, err
	}

	mark.StudentID = in.StudentID
	mark.PaperID = in.PaperID
	mark.ExamType = in.ExamType
	mark.BatchID = in.BatchID
	mark.Marks = in.Marks
	if err := s.markRepo.Update(mark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a mark entry for this student / paper / exam / batch already exists")
		}
		return nil, fmt.Errorf("failed to update mark: %w", err)
	}
	return s.Get(id)
}

// Delete removes a mark entry.
func (s *MarkService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.markRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete mark: %w", err)
	}
	return nil
}

// List returns one page of marks, newest first.
func (s *MarkService) List(filter repository.MarkFilter, page, pageSize int) ([]models.StudentMark, repository.Pagination, error) {
	return s.markRepo.List(filter, page, pageSize)
}
