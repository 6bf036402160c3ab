package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
)

// PassThreshold is the fraction of a paper's max marks needed to pass.
const PassThreshold = 0.35

const (
	maxSubjectStats = 6
	maxRecentMarks  = 5
)

// SubjectStat is the per-paper average for a student.
type SubjectStat struct {
	Paper   string  `json:"paper"`
	Average float64 `json:"avg"`
	Taken   int     `json:"taken"`
}

// StudentStats is the dashboard statistics record for one student. Values
// are raw; rounding happens only at the presentation boundary.
type StudentStats struct {
	Average      float64              `json:"avg_mark"`
	TotalTests   int                  `json:"total_tests"`
	PassPercent  float64              `json:"pass_percent"`
	SubjectStats []SubjectStat        `json:"subject_stats"`
	RecentMarks  []models.StudentMark `json:"last_marks"`
}

// StatsService computes per-student aggregate statistics.
type StatsService struct {
	markRepo repository.MarkRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(markRepo repository.MarkRepository) *StatsService {
	return &StatsService{markRepo: markRepo}
}

// ForStudent computes the statistics record for the given student. A
// student with no marks yields zeroes and empty slices, not an error.
func (s *StatsService) ForStudent(studentID uint) (*StudentStats, error) {
	marks, err := s.markRepo.ListByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load marks: %w", err)
	}

	stats := &StudentStats{
		SubjectStats: []SubjectStat{},
		RecentMarks:  []models.StudentMark{},
	}
	if len(marks) == 0 {
		return stats, nil
	}

	var sum float64
	passed := 0
	type acc struct {
		sum   float64
		taken int
	}
	byPaper := map[string]*acc{}

	for _, m := range marks {
		sum += m.Marks
		// skip the pass check when the paper or its max is missing
		if m.Paper.ID != 0 && m.Paper.MaxMarks > 0 &&
			m.Marks >= PassThreshold*float64(m.Paper.MaxMarks) {
			passed++
		}
		a := byPaper[m.Paper.Name]
		if a == nil {
			a = &acc{}
			byPaper[m.Paper.Name] = a
		}
		a.sum += m.Marks
		a.taken++
	}

	stats.TotalTests = len(marks)
	stats.Average = sum / float64(len(marks))
	stats.PassPercent = float64(passed) / float64(len(marks)) * 100

	for name, a := range byPaper {
		stats.SubjectStats = append(stats.SubjectStats, SubjectStat{
			Paper:   name,
			Average: a.sum / float64(a.taken),
			Taken:   a.taken,
		})
	}
	sort.Slice(stats.SubjectStats, func(i, j int) bool {
		if stats.SubjectStats[i].Average != stats.SubjectStats[j].Average {
			return stats.SubjectStats[i].Average > stats.SubjectStats[j].Average
		}
		return stats.SubjectStats[i].Paper < stats.SubjectStats[j].Paper
	})
	if len(stats.SubjectStats) > maxSubjectStats {
		stats.SubjectStats = stats.SubjectStats[:maxSubjectStats]
	}

	// marks come from the repository newest first
	recent := marks
	if len(recent) > maxRecentMarks {
		recent = recent[:maxRecentMarks]
	}
	stats.RecentMarks = recent

	return stats, nil
}

// Round rounds v to the given number of decimal places. Used only when
// presenting averages (2 dp) and pass percentages (1 dp).
func Round(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}
