// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/glucotrack/glucotrack-api/model"
)

// NewTestDB opens an isolated in-memory SQLite database, migrates every owned
// model and seeds the role and alert type catalogs.
func NewTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := model.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := model.Seed(db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return db
}

// Day returns midnight UTC of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var userSeq atomic.Int64

// UserOption customises a fixture user.
type UserOption func(*model.User)

func WithName(first, last string) UserOption {
	return func(u *model.User) {
		u.FirstName = first
		u.LastName = last
	}
}

func WithEmail(email string) UserOption {
	return func(u *model.User) { u.Email = email }
}

// WithProfile sets gender and birth date.
func WithProfile(gender string, birth time.Time) UserOption {
	return func(u *model.User) {
		u.Gender = gender
		d := datatypes.Date(birth)
		u.BirthDate = &d
	}
}

func CreateUser(t *testing.T, db *gorm.DB, roleID uint, opts ...UserOption) model.User {
	t.Helper()
	u := model.User{
		Username:  fmt.Sprintf("user_%d", userSeq.Add(1)),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", roleID),
		RoleID:    roleID,
	}
	for _, opt := range opts {
		opt(&u)
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func CreateDoctor(t *testing.T, db *gorm.DB, opts ...UserOption) model.User {
	t.Helper()
	return CreateUser(t, db, model.RoleDoctor, opts...)
}

func CreatePatient(t *testing.T, db *gorm.DB, opts ...UserOption) model.User {
	t.Helper()
	return CreateUser(t, db, model.RolePatient, opts...)
}

// Assign links a patient to a doctor from start; a nil end keeps it open.
func Assign(t *testing.T, db *gorm.DB, patientID, doctorID uint, start time.Time, end *time.Time) model.PatientDoctor {
	t.Helper()
	pd := model.PatientDoctor{PatientID: patientID, DoctorID: doctorID, StartDate: datatypes.Date(start)}
	if end != nil {
		d := datatypes.Date(*end)
		pd.EndDate = &d
	}
	if err := db.Create(&pd).Error; err != nil {
		t.Fatalf("failed to assign doctor: %v", err)
	}
	return pd
}

func AddMeasurement(t *testing.T, db *gorm.DB, userID uint, at time.Time, value int) model.GlycemicMeasurement {
	t.Helper()
	m := model.GlycemicMeasurement{UserID: userID, MeasuredAt: at.UTC(), Value: value, MeasurementTypeID: 1, MealTypeID: 1}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("failed to add measurement: %v", err)
	}
	return m
}

// AddAlert stores an alert of the given label about subjectID, addressed to
// recipients.
func AddAlert(t *testing.T, db *gorm.DB, subjectID uint, label, message string, at time.Time, recipients ...uint) model.Alert {
	t.Helper()
	var alertType model.AlertType
	if err := db.Where("label = ?", label).First(&alertType).Error; err != nil {
		t.Fatalf("unknown alert type %s: %v", label, err)
	}
	a := model.Alert{UserID: subjectID, AlertTypeID: alertType.ID, Message: message, CreatedAt: at}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("failed to add alert: %v", err)
	}
	for _, rid := range recipients {
		ar := model.AlertRecipient{AlertID: a.ID, RecipientUserID: rid}
		if err := db.Create(&ar).Error; err != nil {
			t.Fatalf("failed to add recipient: %v", err)
		}
	}
	return a
}

// AddTherapy stores a therapy with the given schedules.
func AddTherapy(t *testing.T, db *gorm.DB, userID, doctorID uint, start time.Time, end *time.Time, schedules ...model.MedicationSchedule) model.Therapy {
	t.Helper()
	th := model.Therapy{
		UserID:    userID,
		DoctorID:  doctorID,
		Title:     "Therapy",
		StartDate: datatypes.Date(start),
		Schedules: schedules,
	}
	if end != nil {
		d := datatypes.Date(*end)
		th.EndDate = &d
	}
	if err := db.Create(&th).Error; err != nil {
		t.Fatalf("failed to add therapy: %v", err)
	}
	return th
}

func AddIntake(t *testing.T, db *gorm.DB, userID uint, scheduleID *uint, at time.Time) model.MedicationIntake {
	t.Helper()
	in := model.MedicationIntake{UserID: userID, MedicationScheduleID: scheduleID, IntakeAt: at.UTC(), Quantity: 1, Unit: "tab"}
	if err := db.Create(&in).Error; err != nil {
		t.Fatalf("failed to add intake: %v", err)
	}
	return in
}

func Ptr[T any](v T) *T { return &v }

func AddSymptom(t *testing.T, db *gorm.DB, userID uint, at time.Time, description string) model.Symptom {
	t.Helper()
	s := model.Symptom{UserID: userID, Description: description, OccurredAt: at.UTC()}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("failed to add symptom: %v", err)
	}
	return s
}

func AddRiskFactor(t *testing.T, db *gorm.DB, label string) model.RiskFactor {
	t.Helper()
	rf := model.RiskFactor{Label: label}
	if err := db.Create(&rf).Error; err != nil {
		t.Fatalf("failed to add risk factor: %v", err)
	}
	return rf
}
