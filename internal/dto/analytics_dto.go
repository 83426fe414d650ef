package dto

// TrendSeries is a labelled series suitable for charting.
type TrendSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Distribution is a labelled count series.
type Distribution struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// CorrelationPoint is one student's mean stress (x) against mean grade (y).
type CorrelationPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name"`
}

// Correlation is a scatter series of stress against grade.
type Correlation struct {
	Labels []string           `json:"labels"`
	Data   []CorrelationPoint `json:"data"`
}

// DashboardSummary carries the headline counts for staff dashboards.
type DashboardSummary struct {
	TotalStudents int64 `json:"total_students"`
	TotalModules  int64 `json:"total_modules"`
	PendingAlerts int64 `json:"pending_alerts_count"`
	TotalUsers    int64 `json:"total_users"`
}

// AverageAttendance is a single attendance percentage.
type AverageAttendance struct {
	StudentID         *uint   `json:"student_id,omitempty"`
	AverageAttendance float64 `json:"average_attendance"`
}

// HighRiskStudent lists a student flagged by one or more risk criteria.
type HighRiskStudent struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Reason   string   `json:"reason"`
	Criteria []string `json:"criteria"`
}

// RiskThresholdsRequest carries optional per-request risk threshold overrides.
type RiskThresholdsRequest struct {
	Attendance *float64 `validate:"omitempty,min=0,max=100"`
	Grade      *float64 `validate:"omitempty,min=0,max=100"`
	Stress     *float64 `validate:"omitempty,min=1,max=5"`
}
