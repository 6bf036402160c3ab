package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
)

// ExportService serializes entity listings as CSV for download.
type ExportService struct {
	courseRepo  repository.CourseRepository
	batchRepo   repository.BatchRepository
	paperRepo   repository.PaperRepository
	studentRepo repository.StudentRepository
	markRepo    repository.MarkRepository
}

// NewExportService creates a new export service.
func NewExportService(
	courseRepo repository.CourseRepository,
	batchRepo repository.BatchRepository,
	paperRepo repository.PaperRepository,
	studentRepo repository.StudentRepository,
	markRepo repository.MarkRepository,
) *ExportService {
	return &ExportService{
		courseRepo:  courseRepo,
		batchRepo:   batchRepo,
		paperRepo:   paperRepo,
		studentRepo: studentRepo,
		markRepo:    markRepo,
	}
}

// Filename builds a timestamped download name like courses_20240131_154500.csv.
func Filename(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
}

// MarksFilename picks the marks download name based on which filter was used.
func MarksFilename(regno, query string) string {
	switch {
	case regno != "":
		return fmt.Sprintf("marks_%s.csv", regno)
	case query != "":
		return "marks_filtered.csv"
	default:
		return "student_marks.csv"
	}
}

// WriteCourses writes the matching courses as CSV rows.
func (s *ExportService) WriteCourses(w io.Writer, query string) error {
	courses, err := s.courseRepo.ListAll(query)
	if err != nil {
		return fmt.Errorf("failed to load courses: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "courseid", "name", "created_at"}); err != nil {
		return err
	}
	for _, c := range courses {
		row := []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.CourseID,
			c.Name,
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBatches writes the matching batches as CSV rows.
func (s *ExportService) WriteBatches(w io.Writer, query string) error {
	batches, err := s.batchRepo.ListAll(query)
	if err != nil {
		return fmt.Errorf("failed to load batches: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "courseid", "course_name", "batch_name", "year", "is_active"}); err != nil {
		return err
	}
	for _, b := range batches {
		row := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Course.CourseID,
			b.Course.Name,
			b.Name,
			b.Year,
			strconv.FormatBool(b.IsActive),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePapers writes the matching papers as CSV rows.
func (s *ExportService) WritePapers(w io.Writer, query string) error {
	papers, err := s.paperRepo.ListAll(query)
	if err != nil {
		return fmt.Errorf("failed to load papers: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "code", "name", "paper_type", "max_marks"}); err != nil {
		return err
	}
	for _, p := range papers {
		row := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Code,
			p.Name,
			p.PaperType,
			strconv.Itoa(p.MaxMarks),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStudents writes the matching students as CSV rows.
func (s *ExportService) WriteStudents(w io.Writer, query string) error {
	students, err := s.studentRepo.ListAll(query)
	if err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "regno", "name", "email", "batch_name", "course_name", "is_active", "created_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, st := range students {
		email := ""
		if st.Email != nil {
			email = *st.Email
		}
		row := []string{
			strconv.FormatUint(uint64(st.ID), 10),
			st.Regno,
			st.Name,
			email,
			st.Batch.Name,
			st.Batch.Course.Name,
			strconv.FormatBool(st.IsActive),
			st.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarks writes the matching marks as CSV rows, newest first. A regno
// filter is a case-insensitive exact match and beats the query filter.
func (s *ExportService) WriteMarks(w io.Writer, regno, query string) error {
	marks, err := s.markRepo.ListAll(repository.MarkFilter{Regno: regno, Query: query})
	if err != nil {
		return fmt.Errorf("failed to load marks: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"RegNo", "Student Name", "Course", "Batch", "Paper Code", "Paper Name",
		"Exam Type", "Marks", "Max Marks", "Created At",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range marks {
		row := []string{
			m.Student.Regno,
			m.Student.Name,
			m.Student.Batch.Course.Name,
			m.Batch.Name,
			m.Paper.Code,
			m.Paper.Name,
			m.ExamType,
			strconv.FormatFloat(m.Marks, 'f', 2, 64),
			strconv.Itoa(m.Paper.MaxMarks),
			m.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
