package models

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Student{},
		&Module{},
		&Enrolment{},
		&AttendanceRecord{},
		&SubmissionRecord{},
		&Grade{},
		&SurveyResponse{},
		&StressEvent{},
		&Alert{},
	}
}
