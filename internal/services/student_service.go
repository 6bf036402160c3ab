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

// StudentService implements student CRUD. Deleting a student cascades to
// their marks; everything else follows the usual validate-then-write flow.
type StudentService struct {
	studentRepo repository.StudentRepository
	batchRepo   repository.BatchRepository
}

// NewStudentService creates a new student service.
func NewStudentService(studentRepo repository.StudentRepository, batchRepo repository.BatchRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo, batchRepo: batchRepo}
}

// StudentInput is the create/update payload for a student.
type StudentInput struct {
	BatchID  uint   `json:"batch_id" validate:"required"`
	Regno    string `json:"regno" validate:"required,max=32,regno"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsActive bool   `json:"is_active"`
}

func (in *StudentInput) normalize() {
	in.Regno = strings.TrimSpace(in.Regno)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

func (s *StudentService) validate(in StudentInput, excludeID uint) error {
	if fe := validation.Struct(in); fe != nil {
		return NewValidationError(fe)
	}

	fe := validation.FieldErrors{}
	if _, err := s.batchRepo.GetByID(in.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fe.Add("batch_id", "batch not found")
		} else {
			return fmt.Errorf("failed to look up batch: %w", err)
		}
	}
	if n, err := s.studentRepo.CountByRegno(in.Regno, excludeID); err != nil {
		return fmt.Errorf("failed to check regno: %w", err)
	} else if n > 0 {
		fe.Add("regno", "a student with this registration number already exists")
	}
	if !fe.Empty() {
		return NewValidationError(fe)
	}
	return nil
}

// Create validates and persists a new student.
func (s *StudentService) Create(in StudentInput) (*models.Student, error) {
	in.normalize()
	if err := s.validate(in, 0); err != nil {
		return nil, err
	}

	student := &models.Student{
		BatchID:  in.BatchID,
		Regno:    in.Regno,
		Name:     in.Name,
		IsActive: in.IsActive,
	}
	if in.Email != "" {
		student.Email = &in.Email
	}
	if err := s.studentRepo.Create(student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a student with this registration number already exists")
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return s.Get(student.ID)
}

// Get returns the student by ID with batch and course preloaded.
func (s *StudentService) Get(id uint) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("student")
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// Update validates and persists changes to an existing student.
func (s *StudentService) Update(id uint, in StudentInput) (*models.Student, error) {
	student, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.validate(in, id); err != nil {
		return nil, err
	}

	student.BatchID = in.BatchID
	student.Regno = in.Regno
	student.Name = in.Name
	student.IsActive = in.IsActive
	if in.Email != "" {
		student.Email = &in.Email
	} else {
		student.Email = nil
	}
	if err := s.studentRepo.Update(student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a student with this registration number already exists")
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return s.Get(id)
}

// Delete removes a student and, in the same transaction, all of their marks.
func (s *StudentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.studentRepo.DeleteCascade(id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

// List returns one page of students matching the optional query.
func (s *StudentService) List(query string, page int) ([]models.Student, repository.Pagination, error) {
	return s.studentRepo.List(query, page)
}

// ResolveByUser maps an authenticated user to their Student record: first a
// case-insensitive exact match of username against regno, then the same
// against email. Returns (nil, nil) when no record matches.
func (s *StudentService) ResolveByUser(username, email string) (*models.Student, error) {
	if username != "" {
		student, err := s.studentRepo.GetByRegno(username)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve student by regno: %w", err)
		}
	}
	if email != "" {
		student, err := s.studentRepo.GetByEmail(email)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve student by email: %w", err)
		}
	}
	return nil, nil
}

// FindByRegno looks up a student for the dashboard regno search: exact
// case-insensitive match first. Returns (nil, nil) when nothing matches.
func (s *StudentService) FindByRegno(regno string) (*models.Student, error) {
	regno = strings.TrimSpace(regno)
	if regno == "" {
		return nil, nil
	}
	student, err := s.studentRepo.GetByRegno(regno)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return nil, nil
}
