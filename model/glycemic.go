package model

import "time"

// GlycemicMeasurement is a single blood glucose reading in mg/dL.
type GlycemicMeasurement struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index:idx_glycemic_user_time,priority:1" json:"user_id"`
	MeasuredAt        time.Time `gorm:"not null;index:idx_glycemic_user_time,priority:2" json:"measured_at"`
	Value             int       `gorm:"not null" json:"value"`
	MeasurementTypeID uint      `json:"measurement_type_id"`
	MealTypeID        uint      `json:"meal_type_id"`
	Note              *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
