package clinical

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
	"github.com/glucotrack/glucotrack-api/testutil"
)

type fixture struct {
	db      *gorm.DB
	repo    repository.Repository
	svc     *Service
	doctor  model.User
	patient model.User
}

func setup(t *testing.T, name string) fixture {
	t.Helper()
	db := testutil.NewTestDB(t, name)
	repo := repository.New(db, nil)
	return fixture{
		db:      db,
		repo:    repo,
		svc:     NewService(repo, nil),
		doctor:  testutil.CreateDoctor(t, db),
		patient: testutil.CreatePatient(t, db),
	}
}

func str(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	f := setup(t, "clinical_update")
	ctx := context.Background()
	smoking := testutil.AddRiskFactor(t, f.db, "Smoking")
	obesity := testutil.AddRiskFactor(t, f.db, "Obesity")

	profile, err := f.svc.UpdateProfile(ctx, ProfileRequest{
		DoctorID: f.doctor.ID,
		UserID:   f.patient.ID,
		Comorbidities: []ComorbidityInput{
			{Comorbidity: "  Hypertension ", StartDate: str("2020-03-01")},
		},
		RiskFactorIDs: []uint{smoking.ID, smoking.ID},
	})
	require.NoError(t, err)
	require.Len(t, profile.Comorbidities, 1)
	assert.Equal(t, "Hypertension", profile.Comorbidities[0].Comorbidity)
	require.NotNil(t, profile.Comorbidities[0].StartDate)
	require.Len(t, profile.RiskFactors, 1)

	existing := profile.Comorbidities[0]
	profile, err = f.svc.UpdateProfile(ctx, ProfileRequest{
		DoctorID: f.doctor.ID,
		UserID:   f.patient.ID,
		Comorbidities: []ComorbidityInput{
			{ID: existing.ID, Comorbidity: "Hypertension", StartDate: str("2020-03-01"), EndDate: str("2024-01-01")},
			{Comorbidity: "Retinopathy"},
		},
		RiskFactorIDs: []uint{smoking.ID, obesity.ID},
	})
	require.NoError(t, err)
	require.Len(t, profile.Comorbidities, 2)
	assert.NotNil(t, profile.Comorbidities[0].EndDate)
	assert.Len(t, profile.RiskFactors, 2)

	entries, err := f.repo.QueryChangeLogs(ctx, entityComorbidity, existing.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.ChangeInsert, entries[0].Action)
	assert.Equal(t, model.ChangeUpdate, entries[1].Action)
	assert.Equal(t, f.doctor.ID, entries[1].DoctorID)
	assert.NotEmpty(t, entries[1].DetailsBefore)

	var riskLogs int64
	require.NoError(t, f.db.Model(&model.ChangeLog{}).Where("entity = ?", entityRiskFactor).Count(&riskLogs).Error)
	assert.EqualValues(t, 2, riskLogs, "already linked factors are not logged again")
}

func TestUpdateProfileValidation(t *testing.T) {
	f := setup(t, "clinical_validation")
	ctx := context.Background()
	other := testutil.CreatePatient(t, f.db)
	foreign := model.ClinicalComorbidity{UserID: other.ID, Comorbidity: "Asthma"}
	require.NoError(t, f.db.Create(&foreign).Error)

	base := func() ProfileRequest {
		return ProfileRequest{DoctorID: f.doctor.ID, UserID: f.patient.ID}
	}
	tests := []struct {
		name string
		edit func(*ProfileRequest)
		want error
	}{
		{"blank comorbidity", func(r *ProfileRequest) { r.Comorbidities = []ComorbidityInput{{Comorbidity: " "}} }, apperr.BadRequest},
		{"bad date", func(r *ProfileRequest) {
			r.Comorbidities = []ComorbidityInput{{Comorbidity: "Asthma", StartDate: str("01/02/2020")}}
		}, apperr.BadRequest},
		{"end before start", func(r *ProfileRequest) {
			r.Comorbidities = []ComorbidityInput{{Comorbidity: "Asthma", StartDate: str("2020-02-01"), EndDate: str("2020-01-01")}}
		}, apperr.BadRequest},
		{"foreign comorbidity", func(r *ProfileRequest) {
			r.Comorbidities = []ComorbidityInput{{ID: foreign.ID, Comorbidity: "Asthma"}}
		}, apperr.BadRequest},
		{"unknown risk factor", func(r *ProfileRequest) { r.RiskFactorIDs = []uint{999} }, apperr.BadRequest},
		{"doctor is a patient", func(r *ProfileRequest) { r.DoctorID = other.ID }, apperr.BadRequest},
		{"subject is a doctor", func(r *ProfileRequest) { r.UserID = f.doctor.ID }, apperr.BadRequest},
		{"unknown patient", func(r *ProfileRequest) { r.UserID = 999 }, apperr.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.edit(&req)
			_, err := f.svc.UpdateProfile(ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var logs int64
	require.NoError(t, f.db.Model(&model.ChangeLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestDeleteComorbidityAndRiskFactor(t *testing.T) {
	f := setup(t, "clinical_delete")
	ctx := context.Background()
	smoking := testutil.AddRiskFactor(t, f.db, "Smoking")
	profile, err := f.svc.UpdateProfile(ctx, ProfileRequest{
		DoctorID:      f.doctor.ID,
		UserID:        f.patient.ID,
		Comorbidities: []ComorbidityInput{{Comorbidity: "Hypertension"}},
		RiskFactorIDs: []uint{smoking.ID},
	})
	require.NoError(t, err)
	c := profile.Comorbidities[0]

	other := testutil.CreatePatient(t, f.db)
	assert.ErrorIs(t, f.svc.DeleteComorbidity(ctx, f.doctor.ID, other.ID, c.ID), apperr.BadRequest)
	require.NoError(t, f.svc.DeleteComorbidity(ctx, f.doctor.ID, f.patient.ID, c.ID))
	assert.ErrorIs(t, f.svc.DeleteComorbidity(ctx, f.doctor.ID, f.patient.ID, c.ID), apperr.NotFound)

	entries, err := f.repo.QueryChangeLogs(ctx, entityComorbidity, c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.ChangeDelete, entries[1].Action)
	assert.Empty(t, entries[1].DetailsAfter)

	require.NoError(t, f.svc.DeleteRiskFactor(ctx, f.doctor.ID, f.patient.ID, smoking.ID))
	assert.ErrorIs(t, f.svc.DeleteRiskFactor(ctx, f.doctor.ID, f.patient.ID, smoking.ID), apperr.NotFound)
	factors, err := f.repo.QueryRiskFactors(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.Empty(t, factors)
}
