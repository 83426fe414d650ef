package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
)

// RiskCriterion tags one reason a student is considered high risk.
type RiskCriterion int

const (
	RiskLowAttendance RiskCriterion = iota + 1
	RiskLowGrade
	RiskHighStress
)

// Code returns the stable machine-readable name of the criterion.
func (c RiskCriterion) Code() string {
	switch c {
	case RiskLowAttendance:
		return "low_attendance"
	case RiskLowGrade:
		return "low_grade"
	case RiskHighStress:
		return "high_stress"
	default:
		return "unknown"
	}
}

// RiskThresholds configures high-risk classification. Values are used as given, so a zero
// threshold is a real bound; callers fill omitted values from DefaultRiskThresholds.
type RiskThresholds struct {
	// AttendancePercent flags mean attendance strictly below this percentage.
	AttendancePercent float64
	// Grade flags mean grades strictly below this mark.
	Grade float64
	// Stress flags mean stress at or above this level.
	Stress float64
}

// DefaultRiskThresholds returns attendance 70%, grade 40 and stress 4.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{AttendancePercent: 70, Grade: 40, Stress: 4}
}

// Describe renders the human-readable reason for a criterion under these thresholds.
func (t RiskThresholds) Describe(c RiskCriterion) string {
	switch c {
	case RiskLowAttendance:
		return fmt.Sprintf("Low attendance (<%s%%)", formatThreshold(t.AttendancePercent))
	case RiskLowGrade:
		return fmt.Sprintf("Low average grade (<%s)", formatThreshold(t.Grade))
	case RiskHighStress:
		// The stress check is inclusive, so the label states the exclusive bound below it.
		return fmt.Sprintf("High average stress (>%s)", formatThreshold(t.Stress-1))
	default:
		return c.Code()
	}
}

func formatThreshold(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

type riskFinding struct {
	studentID uint
	name      string
	criterion RiskCriterion
}

type riskEntry struct {
	id       uint
	name     string
	criteria []RiskCriterion
}

// riskReducer folds findings per student, keeping students in first-match order
// and criteria in the order they were found.
type riskReducer struct {
	order   []uint
	entries map[uint]*riskEntry
}

func newRiskReducer() *riskReducer {
	return &riskReducer{entries: make(map[uint]*riskEntry)}
}

func (r *riskReducer) add(finding riskFinding) {
	entry, ok := r.entries[finding.studentID]
	if !ok {
		entry = &riskEntry{id: finding.studentID, name: finding.name}
		r.entries[finding.studentID] = entry
		r.order = append(r.order, finding.studentID)
	}
	entry.criteria = append(entry.criteria, finding.criterion)
}

func (r *riskReducer) students(thresholds RiskThresholds) []dto.HighRiskStudent {
	result := make([]dto.HighRiskStudent, 0, len(r.order))
	for _, id := range r.order {
		entry := r.entries[id]
		reasons := make([]string, 0, len(entry.criteria))
		codes := make([]string, 0, len(entry.criteria))
		for _, criterion := range entry.criteria {
			reasons = append(reasons, thresholds.Describe(criterion))
			codes = append(codes, criterion.Code())
		}
		result = append(result, dto.HighRiskStudent{
			ID:       entry.id,
			Name:     entry.name,
			Reason:   strings.Join(reasons, ", "),
			Criteria: codes,
		})
	}
	return result
}
