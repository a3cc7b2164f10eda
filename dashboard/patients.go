package dashboard

import (
	"context"
	"fmt"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

// PatientPageSize is the number of patients returned per page.
const PatientPageSize = 10

// PatientFilter narrows the patient search of a doctor. With OnlyAssigned
// the search is limited to the doctor's current patients. A zero MaxAge
// means no upper bound; Page starts at 0.
type PatientFilter struct {
	DoctorID     uint
	OnlyAssigned bool
	Search       string
	Gender       string
	MinAge       int
	MaxAge       int
	Page         int
}

func (f PatientFilter) validate() error {
	if f.DoctorID == 0 {
		return fmt.Errorf("%w: invalid doctor id", apperr.BadRequest)
	}
	if f.Page < 0 || f.MinAge < 0 || f.MaxAge < 0 || (f.MaxAge > 0 && f.MinAge > f.MaxAge) {
		return fmt.Errorf("%w: invalid patient filter", apperr.BadRequest)
	}
	return nil
}

// SearchPatients returns one page of patients matching f. An empty page is
// reported as NotFound.
func (s *Service) SearchPatients(ctx context.Context, f PatientFilter) ([]model.User, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	doctor, err := s.repo.FindUser(ctx, f.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.RoleID != model.RoleDoctor {
		return nil, fmt.Errorf("%w: user %d is not a doctor", apperr.BadRequest, f.DoctorID)
	}

	q := repository.PatientQuery{
		Day:    s.clock.Now(),
		Search: f.Search,
		Gender: f.Gender,
		MinAge: f.MinAge,
		MaxAge: f.MaxAge,
		Offset: f.Page * PatientPageSize,
		Limit:  PatientPageSize,
	}
	if f.OnlyAssigned {
		q.DoctorID = f.DoctorID
	}
	patients, err := s.repo.QueryPatients(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, fmt.Errorf("%w: no patients match the filter", apperr.NotFound)
	}
	return patients, nil
}
