package patientlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/testutil"
)

func TestDailyResume(t *testing.T) {
	f := setup(t, "log_daily_resume")
	ctx := context.Background()
	day := testutil.Day(2024, 5, 14)

	testutil.AddMeasurement(t, f.db, f.patient.ID, day.Add(7*time.Hour), 130)
	testutil.AddMeasurement(t, f.db, f.patient.ID, day.Add(-time.Hour), 140)
	testutil.AddIntake(t, f.db, f.patient.ID, nil, day.Add(8*time.Hour))
	testutil.AddSymptom(t, f.db, f.patient.ID, day.Add(21*time.Hour), "headache")
	testutil.AddSymptom(t, f.db, f.patient.ID, day.AddDate(0, 0, 1), "tired")

	got, err := f.svc.DailyResume(ctx, f.patient.ID, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14", got.Date)
	require.Len(t, got.GlycemicMeasurements, 1)
	assert.Equal(t, 130, got.GlycemicMeasurements[0].Value)
	assert.Len(t, got.MedicationIntakes, 1)
	require.Len(t, got.Symptoms, 1)
	assert.Equal(t, "headache", got.Symptoms[0].Description)

	empty, err := f.svc.DailyResume(ctx, f.patient.ID, testutil.Day(2024, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, empty.GlycemicMeasurements)

	_, err = f.svc.DailyResume(ctx, f.patient.ID, time.Time{})
	assert.ErrorIs(t, err, apperr.BadRequest)
	_, err = f.svc.DailyResume(ctx, f.doctor.ID, day)
	assert.ErrorIs(t, err, apperr.BadRequest)
}

func TestGetAndDeleteOwnRecords(t *testing.T) {
	f := setup(t, "log_get_delete")
	ctx := context.Background()
	other := testutil.CreatePatient(t, f.db)

	m := testutil.AddMeasurement(t, f.db, f.patient.ID, now.Add(-time.Hour), 150)
	sym := testutil.AddSymptom(t, f.db, f.patient.ID, now.Add(-time.Hour), "nausea")

	got, err := f.svc.GetGlycemicMeasurement(ctx, f.patient.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, got.Value)
	_, err = f.svc.GetGlycemicMeasurement(ctx, other.ID, m.ID)
	assert.ErrorIs(t, err, apperr.BadRequest)
	assert.ErrorIs(t, f.svc.DeleteGlycemicMeasurement(ctx, other.ID, m.ID), apperr.BadRequest)

	require.NoError(t, f.svc.DeleteGlycemicMeasurement(ctx, f.patient.ID, m.ID))
	_, err = f.svc.GetGlycemicMeasurement(ctx, f.patient.ID, m.ID)
	assert.ErrorIs(t, err, apperr.NotFound)

	gotSym, err := f.svc.GetSymptom(ctx, f.patient.ID, sym.ID)
	require.NoError(t, err)
	assert.Equal(t, "nausea", gotSym.Description)
	assert.ErrorIs(t, f.svc.DeleteSymptom(ctx, other.ID, sym.ID), apperr.BadRequest)
	require.NoError(t, f.svc.DeleteSymptom(ctx, f.patient.ID, sym.ID))
	assert.ErrorIs(t, f.svc.DeleteSymptom(ctx, f.patient.ID, sym.ID), apperr.NotFound)
}
