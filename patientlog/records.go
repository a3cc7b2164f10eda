package patientlog

import (
	"context"
	"fmt"
	"time"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

// DayLog is everything a patient logged on one calendar day.
type DayLog struct {
	Date                 string                      `json:"date"`
	GlycemicMeasurements []model.GlycemicMeasurement `json:"glycemic_measurements"`
	MedicationIntakes    []model.MedicationIntake    `json:"medication_intakes"`
	Symptoms             []model.Symptom             `json:"symptoms"`
}

// DailyResume collects the readings, intakes and symptoms of day (UTC).
func (s *Service) DailyResume(ctx context.Context, userID uint, day time.Time) (*DayLog, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperr.BadRequest)
	}
	if _, err := s.patient(ctx, userID); err != nil {
		return nil, err
	}
	from := clock.DayStart(day)
	to := from.AddDate(0, 0, 1)

	ms, err := s.repo.QueryGlycemicMeasurements(ctx, repository.MeasurementQuery{
		UserIDs: []uint{userID},
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return nil, err
	}
	intakes, err := s.repo.QueryMedicationIntakes(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	symptoms, err := s.repo.QuerySymptomsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &DayLog{
		Date:                 clock.DayKey(from),
		GlycemicMeasurements: ms,
		MedicationIntakes:    intakes,
		Symptoms:             symptoms,
	}, nil
}

// GetGlycemicMeasurement returns one of the patient's readings.
func (s *Service) GetGlycemicMeasurement(ctx context.Context, userID, id uint) (*model.GlycemicMeasurement, error) {
	m, err := s.repo.FindGlycemicMeasurement(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("%w: measurement %d belongs to another user", apperr.BadRequest, id)
	}
	return m, nil
}

// DeleteGlycemicMeasurement removes one of the patient's readings. Alerts
// already raised for it stay.
func (s *Service) DeleteGlycemicMeasurement(ctx context.Context, userID, id uint) error {
	if _, err := s.GetGlycemicMeasurement(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteGlycemicMeasurement(ctx, id); err != nil {
		return err
	}
	s.log.Info("glycemic measurement deleted", "measurement_id", id, "user_id", userID)
	return nil
}

// GetSymptom returns one of the patient's symptoms.
func (s *Service) GetSymptom(ctx context.Context, userID, id uint) (*model.Symptom, error) {
	sym, err := s.repo.FindSymptom(ctx, id)
	if err != nil {
		return nil, err
	}
	if sym.UserID != userID {
		return nil, fmt.Errorf("%w: symptom %d belongs to another user", apperr.BadRequest, id)
	}
	return sym, nil
}

// DeleteSymptom removes one of the patient's symptoms.
func (s *Service) DeleteSymptom(ctx context.Context, userID, id uint) error {
	if _, err := s.GetSymptom(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteSymptom(ctx, id); err != nil {
		return err
	}
	s.log.Info("symptom deleted", "symptom_id", id, "user_id", userID)
	return nil
}
