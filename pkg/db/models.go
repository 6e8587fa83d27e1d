package db

import "time"

// PlanRecord is one saved optimization outcome. Payload holds the full
// rendered JSON document so a record can be re-printed without re-running
// the optimizer.
type PlanRecord struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Year           int       `gorm:"not null;index" json:"year"`
	Strategy       string    `gorm:"type:varchar(20);not null" json:"strategy"`
	Name           string    `gorm:"not null" json:"name"`
	PTOBudget      int       `json:"pto_budget"`
	FloatingBudget int       `json:"floating_budget"`
	GroupCount     int       `json:"group_count"`
	VacationDays   int       `json:"vacation_days"`
	Payload        string    `gorm:"type:text" json:"payload"`
}

func (PlanRecord) TableName() string {
	return "plan_records"
}
