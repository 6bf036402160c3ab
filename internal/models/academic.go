package models

import "time"

// Course is a programme of study (e.g. MCA Full Time).
type Course struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:64;uniqueIndex;not null"`
	CourseID  string    `json:"courseid" gorm:"column:courseid;size:12;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Batch is a cohort of students enrolled under a course in a given year.
// The (course, name) pair is unique.
type Batch struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_batches_course_name;not null"`
	Course   Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT"`
	Name     string `json:"name" gorm:"size:32;uniqueIndex:idx_batches_course_name;not null"`
	Year     string `json:"year" gorm:"size:9"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// Paper is a gradable subject unit with a maximum achievable mark.
type Paper struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Code      string `json:"code" gorm:"size:16;uniqueIndex;not null"`
	Name      string `json:"name" gorm:"size:120;not null"`
	PaperType string `json:"paper_type" gorm:"size:30"`
	MaxMarks  int    `json:"max_marks" gorm:"default:100"`
}

// Student is a registered student. Regno is the unique registration number
// and doubles as the login handle by convention.
type Student struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BatchID   uint      `json:"batch_id" gorm:"not null"`
	Batch     Batch     `json:"batch" gorm:"foreignKey:BatchID;constraint:OnDelete:RESTRICT"`
	Regno     string    `json:"regno" gorm:"size:32;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     *string   `json:"email"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentMark records the marks a student scored in one paper for one exam.
// At most one row may exist per (student, paper, exam_type, batch); marks are
// stored with fixed 2-decimal precision and never exceed the paper's max.
type StudentMark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"uniqueIndex:idx_marks_tuple;not null"`
	Student   Student   `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	PaperID   uint      `json:"paper_id" gorm:"uniqueIndex:idx_marks_tuple;not null"`
	Paper     Paper     `json:"paper" gorm:"foreignKey:PaperID;constraint:OnDelete:RESTRICT"`
	ExamType  string    `json:"exam_type" gorm:"size:32;uniqueIndex:idx_marks_tuple;not null"`
	BatchID   uint      `json:"batch_id" gorm:"uniqueIndex:idx_marks_tuple;not null"`
	Batch     Batch     `json:"batch" gorm:"foreignKey:BatchID;constraint:OnDelete:RESTRICT"`
	Marks     float64   `json:"marks" gorm:"type:decimal(5,2);not null"`
	CreatedAt time.Time `json:"created_at"`
}
