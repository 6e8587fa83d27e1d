package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrPlanNotFound is returned when no saved plan matches the given ID
var ErrPlanNotFound = errors.New("plan not found")

// PlanStore is the persistence boundary for saved plans
type PlanStore interface {
	SavePlan(rec *PlanRecord) error
	ListPlans(year, limit int) ([]PlanRecord, error)
	GetPlan(id string) (*PlanRecord, error)
	DeletePlan(id string) error
}

// GormPlanStore implements PlanStore on a gorm connection
type GormPlanStore struct {
	db *gorm.DB
}

// NewGormPlanStore migrates the schema and returns the store
func NewGormPlanStore(gdb *gorm.DB) (*GormPlanStore, error) {
	if err := gdb.AutoMigrate(&PlanRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate plan schema: %w", err)
	}
	return &GormPlanStore{db: gdb}, nil
}

func (s *GormPlanStore) SavePlan(rec *PlanRecord) error {
	return s.db.Create(rec).Error
}

// ListPlans returns saved plans, newest first. year 0 means all years;
// limit 0 means no limit.
func (s *GormPlanStore) ListPlans(year, limit int) ([]PlanRecord, error) {
	q := s.db.Order("created_at DESC")
	if year != 0 {
		q = q.Where("year = ?", year)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []PlanRecord
	err := q.Find(&records).Error
	return records, err
}

func (s *GormPlanStore) GetPlan(id string) (*PlanRecord, error) {
	var rec PlanRecord
	err := s.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormPlanStore) DeletePlan(id string) error {
	res := s.db.Delete(&PlanRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return nil
}
