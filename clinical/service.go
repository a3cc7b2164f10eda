// Package clinical maintains the comorbidities and risk factors a doctor
// records for a patient. Every change is audited in the change log.
package clinical

import (
	"context"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

const (
	entityComorbidity = "clinical_comorbidities"
	entityRiskFactor  = "patient_risk_factors"
)

// ComorbidityInput inserts a comorbidity, or updates the one identified by ID.
// Dates use the yyyy-mm-dd layout.
type ComorbidityInput struct {
	ID          uint    `json:"id"`
	Comorbidity string  `json:"comorbidity" binding:"required"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// ProfileRequest upserts comorbidities and adds risk factors. Risk factors
// already linked to the patient are left alone.
type ProfileRequest struct {
	DoctorID      uint               `json:"doctor_id" binding:"required"`
	UserID        uint               `json:"user_id" binding:"required"`
	Comorbidities []ComorbidityInput `json:"comorbidities"`
	RiskFactorIDs []uint             `json:"risk_factor_ids"`
}

// Profile is the clinical context of a patient after a change.
type Profile struct {
	UserID        uint                        `json:"user_id"`
	Comorbidities []model.ClinicalComorbidity `json:"comorbidities"`
	RiskFactors   []model.RiskFactor          `json:"risk_factors"`
}

// Service applies clinical profile changes.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// NewService returns a Service logging through log, or a no-op logger when nil.
func NewService(repo repository.Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log.With("component", "clinical")}
}

func parseDate(raw *string, field string) (*datatypes.Date, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(clock.DayLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must use yyyy-mm-dd", apperr.BadRequest, field)
	}
	d := datatypes.Date(t)
	return &d, nil
}

func (in ComorbidityInput) toModel(userID uint) (model.ClinicalComorbidity, error) {
	c := model.ClinicalComorbidity{ID: in.ID, UserID: userID, Comorbidity: strings.TrimSpace(in.Comorbidity)}
	if c.Comorbidity == "" {
		return c, fmt.Errorf("%w: comorbidity is required", apperr.BadRequest)
	}
	var err error
	if c.StartDate, err = parseDate(in.StartDate, "start_date"); err != nil {
		return c, err
	}
	if c.EndDate, err = parseDate(in.EndDate, "end_date"); err != nil {
		return c, err
	}
	if c.StartDate != nil && c.EndDate != nil && time.Time(*c.EndDate).Before(time.Time(*c.StartDate)) {
		return c, fmt.Errorf("%w: end_date precedes start_date", apperr.BadRequest)
	}
	return c, nil
}

func (s *Service) checkRoles(ctx context.Context, tx repository.UserReader, doctorID, userID uint) error {
	doctor, err := tx.FindUser(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor.RoleID != model.RoleDoctor {
		return fmt.Errorf("%w: user %d is not a doctor", apperr.BadRequest, doctorID)
	}
	patient, err := tx.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if patient.RoleID != model.RolePatient {
		return fmt.Errorf("%w: user %d is not a patient", apperr.BadRequest, userID)
	}
	return nil
}

// UpdateProfile applies req in one transaction and returns the patient's
// resulting comorbidities and risk factors.
func (s *Service) UpdateProfile(ctx context.Context, req ProfileRequest) (*Profile, error) {
	rows := make([]model.ClinicalComorbidity, 0, len(req.Comorbidities))
	for _, in := range req.Comorbidities {
		c, err := in.toModel(req.UserID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, c)
	}
	wanted := mapset.NewSet(req.RiskFactorIDs...)

	profile := &Profile{UserID: req.UserID}
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := s.checkRoles(ctx, tx, req.DoctorID, req.UserID); err != nil {
			return err
		}

		existing, err := tx.QueryComorbidities(ctx, req.UserID)
		if err != nil {
			return err
		}
		byID := lo.KeyBy(existing, func(c model.ClinicalComorbidity) uint { return c.ID })
		for i := range rows {
			c := rows[i]
			if c.ID == 0 {
				if err := tx.InsertComorbidity(ctx, &c); err != nil {
					return err
				}
				if err := s.record(ctx, tx, req.DoctorID, entityComorbidity, c.ID, model.ChangeInsert, nil, c); err != nil {
					return err
				}
				continue
			}
			before, ok := byID[c.ID]
			if !ok {
				return fmt.Errorf("%w: comorbidity %d does not belong to user %d", apperr.BadRequest, c.ID, req.UserID)
			}
			if err := tx.UpdateComorbidity(ctx, &c); err != nil {
				return err
			}
			if err := s.record(ctx, tx, req.DoctorID, entityComorbidity, c.ID, model.ChangeUpdate, before, c); err != nil {
				return err
			}
		}

		if wanted.Cardinality() > 0 {
			known, err := tx.FindRiskFactorsByIDs(ctx, wanted.ToSlice())
			if err != nil {
				return err
			}
			missing := wanted.Difference(mapset.NewSet(lo.Map(known, func(rf model.RiskFactor, _ int) uint { return rf.ID })...))
			if missing.Cardinality() > 0 {
				return fmt.Errorf("%w: unknown risk factors %v", apperr.BadRequest, missing.ToSlice())
			}
			linked, err := tx.QueryPatientRiskFactors(ctx, req.UserID)
			if err != nil {
				return err
			}
			have := mapset.NewSet(lo.Map(linked, func(prf model.PatientRiskFactor, _ int) uint { return prf.RiskFactorID })...)
			for _, rf := range known {
				if have.Contains(rf.ID) {
					continue
				}
				prf := model.PatientRiskFactor{UserID: req.UserID, RiskFactorID: rf.ID}
				if err := tx.InsertPatientRiskFactor(ctx, &prf); err != nil {
					return err
				}
				if err := s.record(ctx, tx, req.DoctorID, entityRiskFactor, prf.ID, model.ChangeInsert, nil, prf); err != nil {
					return err
				}
			}
		}

		if profile.Comorbidities, err = tx.QueryComorbidities(ctx, req.UserID); err != nil {
			return err
		}
		profile.RiskFactors, err = tx.QueryRiskFactors(ctx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("clinical profile updated", "patient_id", req.UserID, "doctor_id", req.DoctorID,
		"comorbidities", len(rows), "risk_factors", wanted.Cardinality())
	return profile, nil
}

// DeleteComorbidity removes one of the patient's comorbidities.
func (s *Service) DeleteComorbidity(ctx context.Context, doctorID, userID, comorbidityID uint) error {
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := s.checkRoles(ctx, tx, doctorID, userID); err != nil {
			return err
		}
		c, err := tx.FindComorbidity(ctx, comorbidityID)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return fmt.Errorf("%w: comorbidity %d does not belong to user %d", apperr.BadRequest, c.ID, userID)
		}
		if err := tx.DeleteComorbidity(ctx, c.ID); err != nil {
			return err
		}
		return s.record(ctx, tx, doctorID, entityComorbidity, c.ID, model.ChangeDelete, c, nil)
	})
}

// DeleteRiskFactor unlinks a risk factor from the patient.
func (s *Service) DeleteRiskFactor(ctx context.Context, doctorID, userID, riskFactorID uint) error {
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := s.checkRoles(ctx, tx, doctorID, userID); err != nil {
			return err
		}
		linked, err := tx.QueryPatientRiskFactors(ctx, userID)
		if err != nil {
			return err
		}
		prf, ok := lo.Find(linked, func(prf model.PatientRiskFactor) bool { return prf.RiskFactorID == riskFactorID })
		if !ok {
			return fmt.Errorf("%w: risk factor %d is not linked to user %d", apperr.NotFound, riskFactorID, userID)
		}
		if err := tx.DeletePatientRiskFactor(ctx, userID, riskFactorID); err != nil {
			return err
		}
		return s.record(ctx, tx, doctorID, entityRiskFactor, prf.ID, model.ChangeDelete, prf, nil)
	})
}

func (s *Service) record(ctx context.Context, tx repository.ChangeLogWriter, doctorID uint, entity string, recordID uint, action string, before, after any) error {
	entry, err := model.NewChangeLog(doctorID, entity, recordID, action, before, after)
	if err != nil {
		return err
	}
	return tx.InsertChangeLog(ctx, entry)
}
