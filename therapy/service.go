// Package therapy manages prescriptions as a chain of immutable versions.
// Changing a therapy closes (or, if it never started, deletes) the current
// version and inserts a successor starting the next day.
package therapy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

const (
	entityTherapy  = "therapies"
	entitySchedule = "medication_schedules"
	recentLimit    = 10
)

// ScheduleInput describes one medication of a therapy being saved.
type ScheduleInput struct {
	MedicationName string  `json:"medication_name" binding:"required"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	DailyIntakes   int     `json:"daily_intakes"`
}

// SaveRequest creates a therapy when TherapyID is zero and replaces the
// given version otherwise.
type SaveRequest struct {
	TherapyID    uint            `json:"therapy_id"`
	DoctorID     uint            `json:"doctor_id" binding:"required"`
	UserID       uint            `json:"user_id" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	Instructions string          `json:"instructions"`
	Schedules    []ScheduleInput `json:"medication_schedules"`
}

func (r SaveRequest) validate() error {
	if r.DoctorID == 0 || r.UserID == 0 {
		return fmt.Errorf("%w: doctor and patient are required", apperr.BadRequest)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", apperr.BadRequest)
	}
	for _, s := range r.Schedules {
		if strings.TrimSpace(s.MedicationName) == "" {
			return fmt.Errorf("%w: medication name is required", apperr.BadRequest)
		}
	}
	return nil
}

// Service owns every change to the therapy version chain.
type Service struct {
	repo  repository.Repository
	clock clock.Clock
	log   *logger.Logger
}

// NewService returns a Service using the system clock when c is nil.
func NewService(repo repository.Repository, c clock.Clock, log *logger.Logger) *Service {
	if c == nil {
		c = clock.System()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, clock: c, log: log.With("component", "therapy")}
}

// Save applies a create or close-and-replace in one transaction and returns
// the new version. Only the head of a chain can be replaced, and only while
// it is still running or pending.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*model.Therapy, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	today := clock.DayStart(s.clock.Now())
	tomorrow := today.AddDate(0, 0, 1)

	next := &model.Therapy{
		UserID:       req.UserID,
		DoctorID:     req.DoctorID,
		Title:        strings.TrimSpace(req.Title),
		Instructions: req.Instructions,
		StartDate:    datatypes.Date(tomorrow),
	}
	for _, in := range req.Schedules {
		next.Schedules = append(next.Schedules, model.MedicationSchedule{
			MedicationName: strings.TrimSpace(in.MedicationName),
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			DailyIntakes:   in.DailyIntakes,
		})
	}

	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.FindUser(ctx, req.UserID); err != nil {
			return err
		}
		if req.TherapyID != 0 {
			prev, err := tx.FindTherapy(ctx, req.TherapyID)
			if err != nil {
				return err
			}
			if prev.UserID != req.UserID {
				return fmt.Errorf("%w: therapy %d belongs to another patient", apperr.BadRequest, prev.ID)
			}
			if err := ensureHead(ctx, tx, prev, today); err != nil {
				return err
			}
			if prev.Start().After(today) {
				if err := deleteVersion(ctx, tx, prev, req.DoctorID); err != nil {
					return err
				}
				next.PreviousTherapyID = prev.PreviousTherapyID
			} else {
				if err := closeVersion(ctx, tx, prev, req.DoctorID, today); err != nil {
					return err
				}
				next.PreviousTherapyID = &prev.ID
			}
		}
		return insertVersion(ctx, tx, next)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("therapy saved", "therapy_id", next.ID, "patient_id", next.UserID, "previous_therapy_id", next.PreviousTherapyID)
	return next, nil
}

// Close ends a running therapy today.
func (s *Service) Close(ctx context.Context, therapyID uint) (*model.Therapy, error) {
	today := clock.DayStart(s.clock.Now())
	var closed *model.Therapy
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		t, err := tx.FindTherapy(ctx, therapyID)
		if err != nil {
			return err
		}
		if t.Start().After(today) {
			return fmt.Errorf("%w: therapy %d has not started", apperr.Conflict, t.ID)
		}
		if end := t.End(); end != nil && !end.After(today) {
			return fmt.Errorf("%w: therapy %d is already closed", apperr.Conflict, t.ID)
		}
		if err := closeVersion(ctx, tx, t, t.DoctorID, today); err != nil {
			return err
		}
		closed = t
		return nil
	})
	return closed, err
}

// Delete removes a therapy and its schedules. A successor, if any, is
// relinked to the deleted version's predecessor so the chain stays intact.
func (s *Service) Delete(ctx context.Context, therapyID uint) error {
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		t, err := tx.FindTherapy(ctx, therapyID)
		if err != nil {
			return err
		}
		successor, err := tx.FindTherapySuccessor(ctx, t.ID)
		if err != nil {
			return err
		}
		if err := deleteVersion(ctx, tx, t, t.DoctorID); err != nil {
			return err
		}
		if successor == nil {
			return nil
		}
		return relinkVersion(ctx, tx, successor, t.PreviousTherapyID, t.DoctorID)
	})
}

// Get returns one version with its schedules.
func (s *Service) Get(ctx context.Context, therapyID uint) (*model.Therapy, error) {
	if therapyID == 0 {
		return nil, fmt.Errorf("%w: invalid therapy id", apperr.BadRequest)
	}
	return s.repo.FindTherapy(ctx, therapyID)
}

// Recent lists the doctor's newest therapies with their schedules.
func (s *Service) Recent(ctx context.Context, doctorID uint) ([]model.Therapy, error) {
	therapies, err := s.repo.QueryTherapies(ctx, repository.TherapyQuery{DoctorID: doctorID, Limit: recentLimit, WithSchedules: true})
	if err != nil {
		return nil, err
	}
	if len(therapies) == 0 {
		return nil, fmt.Errorf("%w: no therapies for doctor %d", apperr.NotFound, doctorID)
	}
	return therapies, nil
}

// History follows PreviousTherapyID links from therapyID back to the first
// version, newest first.
func (s *Service) History(ctx context.Context, therapyID uint) ([]model.Therapy, error) {
	var chain []model.Therapy
	seen := map[uint]bool{}
	id := &therapyID
	for id != nil && !seen[*id] {
		seen[*id] = true
		t, err := s.repo.FindTherapy(ctx, *id)
		if err != nil {
			if len(chain) > 0 && errors.Is(err, apperr.NotFound) {
				break
			}
			return nil, err
		}
		chain = append(chain, *t)
		id = t.PreviousTherapyID
	}
	return chain, nil
}

// ActiveFor returns the patient's therapies active on the current day.
func (s *Service) ActiveFor(ctx context.Context, patientID uint) ([]model.Therapy, error) {
	therapies, err := s.repo.QueryTherapies(ctx, repository.TherapyQuery{UserID: patientID, WithSchedules: true})
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	active := make([]model.Therapy, 0, len(therapies))
	for _, t := range therapies {
		if t.ActiveOn(now) {
			active = append(active, t)
		}
	}
	return active, nil
}
