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

// CourseService implements course CRUD with validation and delete protection.
type CourseService struct {
	courseRepo repository.CourseRepository
	batchRepo  repository.BatchRepository
}

// NewCourseService creates a new course service.
func NewCourseService(courseRepo repository.CourseRepository, batchRepo repository.BatchRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, batchRepo: batchRepo}
}

// CourseInput is the create/update payload for a course. The course ID is
// uppercased at the boundary before validation.
type CourseInput struct {
	Name     string `json:"name" validate:"required,max=64,course_name"`
	CourseID string `json:"courseid" validate:"required,course_code"`
}

func (in *CourseInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CourseID = strings.ToUpper(strings.TrimSpace(in.CourseID))
}

func (s *CourseService) validate(in CourseInput, excludeID uint) error {
	if fe := validation.Struct(in); fe != nil {
		return NewValidationError(fe)
	}

	fe := validation.FieldErrors{}
	if n, err := s.courseRepo.CountByName(in.Name, excludeID); err != nil {
		return fmt.Errorf("failed to check course name: %w", err)
	} else if n > 0 {
		fe.Add("name", "a course with this name already exists")
	}
	if n, err := s.courseRepo.CountByCourseID(in.CourseID, excludeID); err != nil {
		return fmt.Errorf("failed to check course ID: %w", err)
	} else if n > 0 {
		fe.Add("courseid", "a course with this ID already exists")
	}
	if !fe.Empty() {
		return NewValidationError(fe)
	}
	return nil
}

// Create validates and persists a new course.
func (s *CourseService) Create(in CourseInput) (*models.Course, error) {
	in.normalize()
	if err := s.validate(in, 0); err != nil {
		return nil, err
	}

	course := &models.Course{Name: in.Name, CourseID: in.CourseID}
	if err := s.courseRepo.Create(course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a course with this name or ID already exists")
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// Get returns the course by ID.
func (s *CourseService) Get(id uint) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("course")
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// Update validates and persists changes to an existing course.
func (s *CourseService) Update(id uint, in CourseInput) (*models.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.validate(in, id); err != nil {
		return nil, err
	}

	course.Name = in.Name
	course.CourseID = in.CourseID
	if err := s.courseRepo.Update(course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("a course with this name or ID already exists")
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

// Delete removes a course. Deletion is blocked while any batch references it.
func (s *CourseService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	n, err := s.batchRepo.CountByCourse(id)
	if err != nil {
		return fmt.Errorf("failed to check course references: %w", err)
	}
	if n > 0 {
		return NewConflictError("course cannot be deleted while batches reference it")
	}

	if err := s.courseRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// List returns one page of courses matching the optional query.
func (s *CourseService) List(query string, page int) ([]models.Course, repository.Pagination, error) {
	return s.courseRepo.List(query, page)
}
