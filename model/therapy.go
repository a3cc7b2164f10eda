package model

import (
	"time"

	"gorm.io/datatypes"
)

// Therapy is one version of a patient's prescription. Versions are chained
// through PreviousTherapyID; an open EndDate marks the current version.
type Therapy struct {
	ID                uint                 `gorm:"primaryKey" json:"id"`
	UserID            uint                 `gorm:"not null;index" json:"user_id"`
	DoctorID          uint                 `gorm:"not null;index" json:"doctor_id"`
	Title             string               `gorm:"type:varchar(255);not null" json:"title"`
	Instructions      string               `gorm:"type:text" json:"instructions"`
	StartDate         datatypes.Date       `gorm:"not null" json:"start_date"`
	EndDate           *datatypes.Date      `json:"end_date,omitempty"`
	PreviousTherapyID *uint                `gorm:"index" json:"previous_therapy_id,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	Schedules         []MedicationSchedule `gorm:"foreignKey:TherapyID;constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
}

// Start returns the start date at midnight UTC.
func (t Therapy) Start() time.Time { return dateOf(t.StartDate) }

// End returns the end date at midnight UTC, or nil for an open therapy.
func (t Therapy) End() *time.Time {
	if t.EndDate == nil {
		return nil
	}
	end := dateOf(*t.EndDate)
	return &end
}

// ActiveOn reports whether day falls inside [start, end). An open end date
// extends the window indefinitely.
func (t Therapy) ActiveOn(day time.Time) bool {
	d := dateOf(datatypes.Date(day.UTC()))
	if d.Before(t.Start()) {
		return false
	}
	end := t.End()
	return end == nil || d.Before(*end)
}

type MedicationSchedule struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	TherapyID      uint    `gorm:"not null;index" json:"therapy_id"`
	MedicationName string  `gorm:"type:varchar(255);not null" json:"medication_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `gorm:"type:varchar(32)" json:"unit"`
	DailyIntakes   int     `json:"daily_intakes"`
}

// EffectiveDailyIntakes treats a non-positive DailyIntakes as one per day.
func (s MedicationSchedule) EffectiveDailyIntakes() int {
	if s.DailyIntakes > 0 {
		return s.DailyIntakes
	}
	return 1
}

// MedicationIntake records a dose taken. A nil MedicationScheduleID marks an
// extra intake outside any therapy.
type MedicationIntake struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;index" json:"user_id"`
	MedicationScheduleID *uint     `gorm:"index" json:"medication_schedule_id,omitempty"`
	IntakeAt             time.Time `gorm:"not null;index" json:"intake_at"`
	Quantity             float64   `json:"quantity"`
	Unit                 string    `gorm:"type:varchar(32)" json:"unit"`
	MedicationTakenName  *string   `gorm:"type:varchar(255)" json:"medication_taken_name,omitempty"`
	Note                 *string   `gorm:"type:text" json:"note,omitempty"`
}
