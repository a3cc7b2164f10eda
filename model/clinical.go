package model

import (
	"time"

	"gorm.io/datatypes"
)

type Symptom struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OccurredAt  time.Time `gorm:"not null;index" json:"occurred_at"`
}

type ReportedCondition struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	StartDate   *datatypes.Date `json:"start_date,omitempty"`
	EndDate     *datatypes.Date `json:"end_date,omitempty"`
}

type ClinicalComorbidity struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Comorbidity string          `gorm:"type:varchar(255);not null" json:"comorbidity"`
	StartDate   *datatypes.Date `json:"start_date,omitempty"`
	EndDate     *datatypes.Date `json:"end_date,omitempty"`
}

// RiskFactor is a catalog entry a patient can be linked to.
type RiskFactor struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Label       string `gorm:"type:varchar(100);uniqueIndex;not null" json:"label"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

// PatientRiskFactor links a patient to a risk factor once.
type PatientRiskFactor struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_patient_risk,priority:1" json:"user_id"`
	RiskFactorID uint `gorm:"not null;uniqueIndex:idx_patient_risk,priority:2" json:"risk_factor_id"`
}
