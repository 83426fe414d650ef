package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the wellbeing repositories bound to a single database handle.
type Store struct {
	Surveys      SurveyResponseRepository
	StressEvents StressEventRepository
	Alerts       AlertRepository
	Attendance   AttendanceRecordRepository
}

// NewStore binds every repository to db, which may be a transaction.
func NewStore(db *gorm.DB) Store {
	return Store{
		Surveys:      NewSurveyResponseRepository(db),
		StressEvents: NewStressEventRepository(db),
		Alerts:       NewAlertRepository(db),
		Attendance:   NewAttendanceRecordRepository(db),
	}
}

// UnitOfWork runs a callback against a Store whose writes commit or roll back together.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(store Store) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork constructs a transaction runner over db.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) WithinTransaction(ctx context.Context, fn func(store Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
