// Package patientlog records what patients report: glucose readings,
// medication intakes and symptoms.
package patientlog

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
	"github.com/glucotrack/glucotrack-api/util"
)

const resumeDays = 7

// Alerter raises alerts for newly stored readings.
type Alerter interface {
	ClassifyAndAlert(ctx context.Context, subjectID uint, value int, measuredAt time.Time) (alert.Outcome, error)
}

// GlycemicLogRequest inserts a reading, or updates the reading identified by
// GlycemicMeasurementID when it is set.
type GlycemicLogRequest struct {
	GlycemicMeasurementID uint      `json:"glycemic_measurement_id"`
	UserID                uint      `json:"user_id" binding:"required"`
	MeasuredAt            time.Time `json:"measured_at"`
	Value                 int       `json:"value" binding:"required"`
	MeasurementTypeID     uint      `json:"measurement_type_id"`
	MealTypeID            uint      `json:"meal_type_id"`
	Note                  *string   `json:"note"`
}

// GlycemicLogResult is the stored reading plus, for new readings, what the
// alerter decided.
type GlycemicLogResult struct {
	Measurement model.GlycemicMeasurement `json:"measurement"`
	Updated     bool                      `json:"updated"`
	Alert       *alert.Outcome            `json:"alert,omitempty"`
}

// MedicationLogRequest records an intake against a schedule, or an extra
// intake when MedicationScheduleID is nil.
type MedicationLogRequest struct {
	UserID               uint      `json:"user_id" binding:"required"`
	MedicationScheduleID *uint     `json:"medication_schedule_id"`
	IntakeAt             time.Time `json:"intake_at"`
	Quantity             float64   `json:"quantity"`
	Unit                 string    `json:"unit"`
	MedicationTakenName  *string   `json:"medication_taken_name"`
	Note                 *string   `json:"note"`
}

type SymptomLogRequest struct {
	UserID      uint      `json:"user_id" binding:"required"`
	Description string    `json:"description" binding:"required"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// DayAverage is one entry of the weekly glucose resume.
type DayAverage struct {
	Day     string  `json:"day"`
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

// Service stores what patients log.
type Service struct {
	repo   repository.Repository
	alerts Alerter
	clock  clock.Clock
	log    *logger.Logger
}

func NewService(repo repository.Repository, alerts Alerter, c clock.Clock, log *logger.Logger) *Service {
	if c == nil {
		c = clock.System()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, alerts: alerts, clock: c, log: log.With("component", "patientlog")}
}

func (s *Service) patient(ctx context.Context, userID uint) (*model.User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", apperr.BadRequest)
	}
	u, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.RoleID != model.RolePatient {
		return nil, fmt.Errorf("%w: user %d is not a patient", apperr.BadRequest, userID)
	}
	return u, nil
}

func (s *Service) orNow(t time.Time) time.Time {
	if t.IsZero() {
		return s.clock.Now()
	}
	return t.UTC()
}

// LogGlycemia stores a reading. New readings are passed to the alerter; an
// alerting failure is logged and leaves the stored reading in place.
func (s *Service) LogGlycemia(ctx context.Context, req GlycemicLogRequest) (*GlycemicLogResult, error) {
	if req.Value <= 0 {
		return nil, fmt.Errorf("%w: value must be positive", apperr.BadRequest)
	}
	if _, err := s.patient(ctx, req.UserID); err != nil {
		return nil, err
	}

	if req.GlycemicMeasurementID > 0 {
		m, err := s.repo.FindGlycemicMeasurement(ctx, req.GlycemicMeasurementID)
		if err != nil {
			return nil, err
		}
		if m.UserID != req.UserID {
			return nil, fmt.Errorf("%w: measurement %d belongs to another user", apperr.BadRequest, m.ID)
		}
		m.MeasuredAt = s.orNow(req.MeasuredAt)
		m.Value = req.Value
		m.Note = req.Note
		m.MeasurementTypeID = req.MeasurementTypeID
		m.MealTypeID = req.MealTypeID
		if err := s.repo.UpdateGlycemicMeasurement(ctx, m); err != nil {
			return nil, err
		}
		return &GlycemicLogResult{Measurement: *m, Updated: true}, nil
	}

	m := model.GlycemicMeasurement{
		UserID:            req.UserID,
		MeasuredAt:        s.orNow(req.MeasuredAt),
		Value:             req.Value,
		MeasurementTypeID: req.MeasurementTypeID,
		MealTypeID:        req.MealTypeID,
		Note:              req.Note,
	}
	if err := s.repo.InsertGlycemicMeasurement(ctx, &m); err != nil {
		return nil, err
	}

	result := &GlycemicLogResult{Measurement: m}
	if s.alerts == nil {
		return result, nil
	}
	outcome, err := s.alerts.ClassifyAndAlert(ctx, m.UserID, m.Value, m.MeasuredAt)
	if err != nil {
		s.log.Error("alerting failed for stored reading", "measurement_id", m.ID, "user_id", m.UserID, "error", err)
		return result, nil
	}
	result.Alert = &outcome
	return result, nil
}

// LogMedication records an intake. A schedule id must belong to one of the
// patient's therapies; without one the intake counts as extra.
func (s *Service) LogMedication(ctx context.Context, req MedicationLogRequest) (*model.MedicationIntake, error) {
	if _, err := s.patient(ctx, req.UserID); err != nil {
		return nil, err
	}
	if req.MedicationScheduleID == nil && (req.MedicationTakenName == nil || strings.TrimSpace(*req.MedicationTakenName) == "") {
		return nil, fmt.Errorf("%w: a schedule or a medication name is required", apperr.BadRequest)
	}
	if req.MedicationScheduleID != nil {
		therapies, err := s.repo.QueryTherapies(ctx, repository.TherapyQuery{UserID: req.UserID, WithSchedules: true})
		if err != nil {
			return nil, err
		}
		owned := lo.ContainsBy(therapies, func(t model.Therapy) bool {
			return lo.ContainsBy(t.Schedules, func(ms model.MedicationSchedule) bool {
				return ms.ID == *req.MedicationScheduleID
			})
		})
		if !owned {
			return nil, fmt.Errorf("%w: schedule %d is not part of the patient's therapies", apperr.BadRequest, *req.MedicationScheduleID)
		}
	}

	in := model.MedicationIntake{
		UserID:               req.UserID,
		MedicationScheduleID: req.MedicationScheduleID,
		IntakeAt:             s.orNow(req.IntakeAt),
		Quantity:             req.Quantity,
		Unit:                 req.Unit,
		MedicationTakenName:  req.MedicationTakenName,
		Note:                 req.Note,
	}
	if err := s.repo.InsertMedicationIntake(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// LogSymptom stores a symptom with its description normalized.
func (s *Service) LogSymptom(ctx context.Context, req SymptomLogRequest) (*model.Symptom, error) {
	description := util.NormalizeText(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperr.BadRequest)
	}
	if _, err := s.patient(ctx, req.UserID); err != nil {
		return nil, err
	}
	sym := model.Symptom{
		UserID:      req.UserID,
		Description: description,
		OccurredAt:  s.orNow(req.OccurredAt),
	}
	if err := s.repo.InsertSymptom(ctx, &sym); err != nil {
		return nil, err
	}
	return &sym, nil
}

// GlycemicResume returns the daily average of the last seven days, today
// last. Days without readings average 0.
func (s *Service) GlycemicResume(ctx context.Context, userID uint) ([]DayAverage, error) {
	if _, err := s.patient(ctx, userID); err != nil {
		return nil, err
	}
	today := clock.DayStart(s.clock.Now())
	from := today.AddDate(0, 0, -(resumeDays - 1))
	to := today.AddDate(0, 0, 1)

	ms, err := s.repo.QueryGlycemicMeasurements(ctx, repository.MeasurementQuery{
		UserIDs: []uint{userID},
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return nil, err
	}
	byDay := lo.GroupBy(ms, func(m model.GlycemicMeasurement) string { return clock.DayKey(m.MeasuredAt) })

	resume := make([]DayAverage, 0, resumeDays)
	for i := 0; i < resumeDays; i++ {
		day := from.AddDate(0, 0, i)
		key := clock.DayKey(day)
		avg := 0.0
		if readings := byDay[key]; len(readings) > 0 {
			avg = float64(lo.SumBy(readings, func(m model.GlycemicMeasurement) int { return m.Value })) / float64(len(readings))
		}
		resume = append(resume, DayAverage{
			Day:     strings.ToLower(day.Weekday().String()[:3]),
			Date:    key,
			Average: math.Round(avg*100) / 100,
		})
	}
	return resume, nil
}
