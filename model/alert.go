package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

const (
	AlertStatusOpen     = "open"
	AlertStatusResolved = "resolved"
)

// Alert type catalog labels.
const (
	LabelNoMeasurements              = "NO_MEASUREMENTS"
	LabelPartialMeasurements         = "PARTIAL_MEASUREMENTS"
	LabelRepeatedPartialMeasurements = "REPEATED_PARTIAL_MEASUREMENTS"
	LabelMissedMedication            = "MISSED_MEDICATION"
	LabelTherapyNotFollowed          = "THERAPY_NOT_FOLLOWED"
	LabelSlightlyHighGlucose         = "SLIGHTLY_HIGH_GLUCOSE"
	LabelHighGlucose                 = "HIGH_GLUCOSE"
	LabelVeryHighGlucose             = "VERY_HIGH_GLUCOSE"
	LabelCriticalGlucose             = "CRITICAL_GLUCOSE"
	LabelCriticalSymptom             = "CRITICAL_SYMPTOM"
	LabelNewComorbidity              = "NEW_COMORBIDITY"
	LabelNewCondition                = "NEW_CONDITION"
)

// GlycemicAlertLabels are the alert types raised from glucose readings.
var GlycemicAlertLabels = []string{LabelHighGlucose, LabelVeryHighGlucose, LabelCriticalGlucose}

type AlertType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Label       string `gorm:"type:varchar(64);uniqueIndex;not null" json:"label"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

// Alert is one notification event about a subject patient. The unique index
// idx_alert_dedup guarantees at most one alert per subject, type, message and
// calendar day.
type Alert struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;uniqueIndex:idx_alert_dedup,priority:1" json:"user_id"`
	AlertTypeID       uint       `gorm:"not null;uniqueIndex:idx_alert_dedup,priority:2" json:"alert_type_id"`
	Message           string     `gorm:"type:text;not null" json:"message"`
	MessageDigest     string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_alert_dedup,priority:3" json:"-"`
	CreatedOn         string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_alert_dedup,priority:4" json:"created_on"`
	CreatedAt         time.Time  `gorm:"not null;index" json:"created_at"`
	Status            string     `gorm:"type:varchar(16);not null;default:open;index" json:"status"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	ReferenceDate     *time.Time `json:"reference_date,omitempty"`
	ReferencePeriod   *string    `gorm:"type:varchar(32)" json:"reference_period,omitempty"`
	ReferenceObjectID *uint      `json:"reference_object_id,omitempty"`
}

// MessageDigest returns the hex SHA-256 of an alert message.
func MessageDigest(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

// BeforeCreate fills the dedup key columns from CreatedAt and Message.
func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = tx.NowFunc()
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.CreatedOn = a.CreatedAt.Format("2006-01-02")
	a.MessageDigest = MessageDigest(a.Message)
	if a.Status == "" {
		a.Status = AlertStatusOpen
	}
	return nil
}

// AlertRecipient is the per-user delivery and read state of an Alert.
type AlertRecipient struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AlertID         uint       `gorm:"not null;uniqueIndex:idx_alert_recipient,priority:1" json:"alert_id"`
	RecipientUserID uint       `gorm:"not null;uniqueIndex:idx_alert_recipient,priority:2;index" json:"recipient_user_id"`
	IsRead          bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	NotifiedAt      *time.Time `json:"notified_at,omitempty"`
}

// RecipientAlert is the read model joining a recipient row with its alert,
// the alert type and the subject patient.
type RecipientAlert struct {
	AlertRecipientID uint       `json:"alert_recipient_id"`
	AlertID          uint       `json:"alert_id"`
	RecipientUserID  uint       `json:"recipient_user_id"`
	PatientID        uint       `json:"patient_id"`
	PatientFirstName string     `json:"patient_first_name"`
	PatientLastName  string     `json:"patient_last_name"`
	AlertTypeID      uint       `json:"alert_type_id"`
	Label            string     `json:"label"`
	Description      string     `json:"description"`
	Message          string     `json:"message"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	IsRead           bool       `json:"is_read"`
	ReadAt           *time.Time `json:"read_at,omitempty"`
}
