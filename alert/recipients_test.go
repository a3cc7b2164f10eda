package alert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
)

// stubUsers is an in-memory UserReader.
type stubUsers struct {
	doctors  []model.User
	assigned map[uint]uint
	calls    int
}

func (s *stubUsers) FindUser(context.Context, uint) (*model.User, error) { return &model.User{}, nil }

func (s *stubUsers) FindUsersByRole(_ context.Context, roleID uint) ([]model.User, error) {
	s.calls++
	if roleID != model.RoleDoctor {
		return nil, nil
	}
	return s.doctors, nil
}

func (s *stubUsers) FindCurrentDoctorForPatient(_ context.Context, patientID uint, _ time.Time) (*model.PatientDoctor, error) {
	doc, ok := s.assigned[patientID]
	if !ok {
		return nil, nil
	}
	return &model.PatientDoctor{PatientID: patientID, DoctorID: doc}, nil
}

func (s *stubUsers) FindCurrentPatientsForDoctor(context.Context, uint, time.Time) ([]model.User, error) {
	return nil, nil
}

func doctors(ids ...uint) []model.User {
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		u := model.User{RoleID: model.RoleDoctor}
		u.ID = id
		out = append(out, u)
	}
	return out
}

func newResolver(users *stubUsers) *RecipientResolver {
	return NewRecipientResolver(users, clock.Fixed(time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)))
}

func TestResolveRecipientsMildIncludesSubjectOnce(t *testing.T) {
	// Duplicate doctor rows and a zero id must collapse away.
	users := &stubUsers{doctors: doctors(5, 2, 5, 0)}
	ids, err := newResolver(users).ResolveRecipients(context.Background(), 7, SeverityMild)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 5, 7}, ids)
	assert.Equal(t, 1, users.calls, "doctors are resolved with a single query")
}

func TestResolveRecipientsSevere(t *testing.T) {
	users := &stubUsers{doctors: doctors(3)}
	ids, err := newResolver(users).ResolveRecipients(context.Background(), 9, SeveritySevere)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 9}, ids)
}

func TestResolveRecipientsCritical(t *testing.T) {
	users := &stubUsers{doctors: doctors(2, 4), assigned: map[uint]uint{9: 4}}
	ids, err := newResolver(users).ResolveRecipients(context.Background(), 9, SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 4}, ids, "the patient is not a recipient of critical alerts")
}

func TestResolveRecipientsCriticalWithoutDoctor(t *testing.T) {
	users := &stubUsers{doctors: doctors(2, 4)}
	_, err := newResolver(users).ResolveRecipients(context.Background(), 9, SeverityCritical)
	assert.ErrorIs(t, err, ErrNoDoctorAssigned)
}

func TestResolveRecipientsValidation(t *testing.T) {
	r := newResolver(&stubUsers{})
	_, err := r.ResolveRecipients(context.Background(), 0, SeverityMild)
	assert.ErrorIs(t, err, ErrInvalidSubject)
	_, err = r.ResolveRecipients(context.Background(), 1, SeverityNone)
	assert.ErrorIs(t, err, ErrUnknownSeverity)
}
