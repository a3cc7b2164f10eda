// Package repository is the persistence boundary of the service. Every
// method takes a context and runs against either the root connection or the
// transaction handed to Transaction's callback.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
)

// UserReader looks up users and doctor assignments.
type UserReader interface {
	FindUser(ctx context.Context, id uint) (*model.User, error)
	FindUsersByRole(ctx context.Context, roleID uint) ([]model.User, error)
	// FindCurrentDoctorForPatient returns nil when the patient has no
	// assignment in force on day.
	FindCurrentDoctorForPatient(ctx context.Context, patientID uint, day time.Time) (*model.PatientDoctor, error)
	FindCurrentPatientsForDoctor(ctx context.Context, doctorID uint, day time.Time) ([]model.User, error)
}

// PatientDirectory searches patient accounts.
type PatientDirectory interface {
	QueryPatients(ctx context.Context, q PatientQuery) ([]model.User, error)
}

// AlertRepository persists alerts and their recipients.
type AlertRepository interface {
	FindAlertTypeByLabel(ctx context.Context, label string) (*model.AlertType, error)
	FindAlertTypesByLabels(ctx context.Context, labels []string) ([]model.AlertType, error)
	AlertExists(ctx context.Context, subjectID, alertTypeID uint, message, day string) (bool, error)
	InsertAlert(ctx context.Context, alert *model.Alert) error
	InsertAlertRecipients(ctx context.Context, recipients []model.AlertRecipient) error
	QueryAlerts(ctx context.Context, q AlertQuery) ([]model.Alert, error)
	QueryRecipientAlerts(ctx context.Context, q RecipientAlertQuery) ([]model.RecipientAlert, error)
	FindAlertRecipient(ctx context.Context, id uint) (*model.AlertRecipient, error)
	ResolveAlertRecipient(ctx context.Context, id uint, at time.Time) error
	MarkRecipientRead(ctx context.Context, id uint, at time.Time) error
}

type MeasurementRepository interface {
	QueryGlycemicMeasurements(ctx context.Context, q MeasurementQuery) ([]model.GlycemicMeasurement, error)
	FindGlycemicMeasurement(ctx context.Context, id uint) (*model.GlycemicMeasurement, error)
	InsertGlycemicMeasurement(ctx context.Context, m *model.GlycemicMeasurement) error
	UpdateGlycemicMeasurement(ctx context.Context, m *model.GlycemicMeasurement) error
	DeleteGlycemicMeasurement(ctx context.Context, id uint) error
}

// TherapyRepository persists therapy versions, schedules and intakes.
type TherapyRepository interface {
	QueryTherapies(ctx context.Context, q TherapyQuery) ([]model.Therapy, error)
	FindTherapy(ctx context.Context, id uint) (*model.Therapy, error)
	FindTherapySuccessor(ctx context.Context, id uint) (*model.Therapy, error)
	QueryMedicationSchedules(ctx context.Context, therapyIDs []uint) ([]model.MedicationSchedule, error)
	CountScheduledIntakes(ctx context.Context, windows []IntakeWindow) (map[uint]int64, error)
	QueryExtraIntakes(ctx context.Context, userID uint, since time.Time) ([]model.MedicationIntake, error)
	InsertTherapy(ctx context.Context, t *model.Therapy) error
	CloseTherapy(ctx context.Context, id uint, end time.Time) error
	RelinkTherapy(ctx context.Context, id uint, previousID *uint) error
	DeleteTherapy(ctx context.Context, id uint) error
	InsertMedicationIntake(ctx context.Context, in *model.MedicationIntake) error
	QueryMedicationIntakes(ctx context.Context, userID uint, from, to time.Time) ([]model.MedicationIntake, error)
}

// ClinicalReader reads the clinical context of a patient.
type ClinicalReader interface {
	QuerySymptoms(ctx context.Context, userID uint, limit int) ([]model.Symptom, error)
	QueryReportedConditions(ctx context.Context, userID uint) ([]model.ReportedCondition, error)
	QueryComorbidities(ctx context.Context, userID uint) ([]model.ClinicalComorbidity, error)
	QueryRiskFactors(ctx context.Context, userID uint) ([]model.RiskFactor, error)
	InsertSymptom(ctx context.Context, s *model.Symptom) error
	QuerySymptomsBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.Symptom, error)
	FindSymptom(ctx context.Context, id uint) (*model.Symptom, error)
}

// ClinicalWriter maintains a patient's symptoms, comorbidities and risk
// factors.
type ClinicalWriter interface {
	DeleteSymptom(ctx context.Context, id uint) error
	FindComorbidity(ctx context.Context, id uint) (*model.ClinicalComorbidity, error)
	InsertComorbidity(ctx context.Context, c *model.ClinicalComorbidity) error
	UpdateComorbidity(ctx context.Context, c *model.ClinicalComorbidity) error
	DeleteComorbidity(ctx context.Context, id uint) error
	FindRiskFactorsByIDs(ctx context.Context, ids []uint) ([]model.RiskFactor, error)
	QueryPatientRiskFactors(ctx context.Context, userID uint) ([]model.PatientRiskFactor, error)
	InsertPatientRiskFactor(ctx context.Context, prf *model.PatientRiskFactor) error
	DeletePatientRiskFactor(ctx context.Context, userID, riskFactorID uint) error
}

type ChangeLogWriter interface {
	InsertChangeLog(ctx context.Context, entry *model.ChangeLog) error
	QueryChangeLogs(ctx context.Context, entity string, recordID uint) ([]model.ChangeLog, error)
}

// Repository is the full data access surface.
type Repository interface {
	UserReader
	PatientDirectory
	AlertRepository
	MeasurementRepository
	TherapyRepository
	ClinicalReader
	ClinicalWriter
	ChangeLogWriter

	// Transaction runs fn against a repository bound to a single database
	// transaction. A non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}

// MeasurementQuery filters glycemic readings. From is inclusive, To exclusive.
type MeasurementQuery struct {
	UserIDs []uint
	From    *time.Time
	To      *time.Time
}

// AlertQuery filters alerts by subject and type.
type AlertQuery struct {
	SubjectIDs   []uint
	AlertTypeIDs []uint
	OnlyOpen     bool
}

// RecipientAlertQuery filters the recipient inbox view. Results are ordered
// newest alert first.
type RecipientAlertQuery struct {
	RecipientIDs []uint
	AlertTypeIDs []uint
	OnlyOpen     bool
	Limit        int
}

// PatientQuery filters patient accounts. DoctorID limits the result to the
// doctor's current patients on Day. Ages are whole years on Day; a zero
// MaxAge means no upper bound.
type PatientQuery struct {
	DoctorID uint
	Day      time.Time
	Search   string
	Gender   string
	MinAge   int
	MaxAge   int
	Offset   int
	Limit    int
}

// TherapyQuery filters therapies, newest first.
type TherapyQuery struct {
	UserID        uint
	DoctorID      uint
	Limit         int
	WithSchedules bool
}

// IntakeWindow asks for intakes of one schedule whose day lies in
// [From, To], both inclusive.
type IntakeWindow struct {
	ScheduleID uint
	From       time.Time
	To         time.Time
}

type gormRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// New returns the gorm backed Repository.
func New(db *gorm.DB, baseLog *logger.Logger) Repository {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &gormRepository{db: db, log: baseLog.With("component", "repository")}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx, log: r.log})
	})
}

func (r *gormRepository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %v", apperr.NotFound, what, id)
	}
	return err
}

// deleteByID hard deletes one row of value's table, NotFound when absent.
func deleteByID(db *gorm.DB, value any, what string, id uint) error {
	res := db.Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", apperr.NotFound, what, id)
	}
	return nil
}
