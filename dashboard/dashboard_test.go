package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
	"github.com/glucotrack/glucotrack-api/testutil"
)

// Wednesday of ISO week 2024-W20; the week starts Monday 2024-05-13.
var now = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name           string
		previous, curr float64
		want           Trend
	}{
		{"up", 150, 160, TrendUp},
		{"down", 160, 150, TrendDown},
		{"stable small rise", 160, 162, TrendStable},
		{"exactly threshold", 160, 165, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTrend(tt.curr, tt.previous, true, true))
		})
	}
	assert.Equal(t, TrendStable, ComputeTrend(300, 0, true, false))
	assert.Equal(t, TrendStable, ComputeTrend(0, 100, false, true))
}

func ids(ps []PatientSummary) []uint {
	out := make([]uint, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.UserID)
	}
	return out
}

func addWeek(t *testing.T, db *gorm.DB, userID uint, monday time.Time, values ...int) {
	t.Helper()
	for i, v := range values {
		testutil.AddMeasurement(t, db, userID, monday.AddDate(0, 0, i%7).Add(8*time.Hour), v)
	}
}

func TestGetDoctorDashboard(t *testing.T) {
	db := testutil.NewTestDB(t, "dashboard")
	repo := repository.New(db, nil)
	svc := NewService(repo, clock.Fixed(now), nil)
	ctx := context.Background()

	thisMonday := testutil.Day(2024, 5, 13)
	lastMonday := thisMonday.AddDate(0, 0, -7)
	since := thisMonday.AddDate(0, -3, 0)

	doctor := testutil.CreateDoctor(t, db)
	otherDoctor := testutil.CreateDoctor(t, db)
	steady := testutil.CreatePatient(t, db, testutil.WithName("Ada", "Steady"))
	rising := testutil.CreatePatient(t, db, testutil.WithName("Ben", "Rising"))
	high := testutil.CreatePatient(t, db, testutil.WithName("Cy", "High"))
	flagged := testutil.CreatePatient(t, db, testutil.WithName("Di", "Flagged"))
	former := testutil.CreatePatient(t, db, testutil.WithName("Ed", "Former"))
	elsewhere := testutil.CreatePatient(t, db, testutil.WithName("Flo", "Elsewhere"))

	for _, p := range []model.User{steady, rising, high, flagged} {
		testutil.Assign(t, db, p.ID, doctor.ID, since, nil)
	}
	testutil.Assign(t, db, former.ID, doctor.ID, since, testutil.Ptr(thisMonday))
	testutil.Assign(t, db, elsewhere.ID, otherDoctor.ID, since, nil)

	// Six readings a day for the whole week average 107.5.
	for day := 0; day < 7; day++ {
		for _, v := range []int{95, 110, 120, 105, 100, 115} {
			testutil.AddMeasurement(t, db, steady.ID, thisMonday.AddDate(0, 0, day).Add(9*time.Hour), v)
		}
	}
	addWeek(t, db, rising.ID, lastMonday, 150, 150)
	addWeek(t, db, rising.ID, thisMonday, 155, 165)
	addWeek(t, db, high.ID, thisMonday, 200, 220)
	addWeek(t, db, flagged.ID, lastMonday, 140)
	addWeek(t, db, flagged.ID, thisMonday, 120, 118)
	addWeek(t, db, former.ID, thisMonday, 300)

	critical := testutil.AddAlert(t, db, flagged.ID, model.LabelCriticalGlucose, "critical", now.Add(-time.Hour), doctor.ID, otherDoctor.ID)
	testutil.AddAlert(t, db, high.ID, model.LabelHighGlucose, "mild", now.Add(-2*time.Hour), doctor.ID, high.ID)
	resolved := testutil.AddAlert(t, db, steady.ID, model.LabelVeryHighGlucose, "old", now.AddDate(0, 0, -2), doctor.ID)
	require.NoError(t, db.Model(&model.Alert{}).Where("id = ?", resolved.ID).Update("status", model.AlertStatusResolved).Error)
	testutil.AddAlert(t, db, steady.ID, model.LabelMissedMedication, "not glycemic", now, doctor.ID)

	summary, err := svc.GetDoctorDashboard(ctx, doctor.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint{steady.ID, rising.ID}, ids(summary.InLinePatients))
	assert.Equal(t, []uint{high.ID}, ids(summary.HighAvgGlucosePatients))
	assert.Equal(t, []uint{flagged.ID}, ids(summary.NeedsAttentionPatients))

	for _, p := range summary.InLinePatients {
		switch p.UserID {
		case steady.ID:
			assert.Equal(t, 107.5, p.WeeklyAvgGlycemia)
			assert.Equal(t, TrendStable, p.Trend)
		case rising.ID:
			assert.Equal(t, 160.0, p.WeeklyAvgGlycemia)
			assert.Equal(t, 150.0, p.PreviousWeekAvg)
			assert.Equal(t, TrendUp, p.Trend)
		}
	}
	assert.Equal(t, 210.0, summary.HighAvgGlucosePatients[0].WeeklyAvgGlycemia)
	assert.Equal(t, TrendDown, summary.NeedsAttentionPatients[0].Trend)
	assert.True(t, summary.NeedsAttentionPatients[0].HasOpenAlert)

	ga := summary.GlycemiaAlerts
	assert.Equal(t, 2, ga.TotalOpen)
	assert.Equal(t, 1, ga.CriticalCount)
	assert.Equal(t, 0, ga.SevereCount)
	assert.Equal(t, 1, ga.MildCount)
	require.Len(t, ga.Alerts, 2)
	assert.Equal(t, critical.ID, ga.Alerts[0].AlertID, "newest first")
	assert.Equal(t, alert.SeverityCritical, ga.Alerts[0].Level)
	assert.Equal(t, "Di", ga.Alerts[0].PatientFirstName)
	assert.Equal(t, flagged.ID, ga.Alerts[0].PatientID)
	assert.Equal(t, model.AlertStatusOpen, ga.Alerts[0].Status)
}

func TestGetDoctorDashboardQueryCountIsConstant(t *testing.T) {
	countFor := func(patients int) int {
		db := testutil.NewTestDB(t, "dashboard_queries")
		doctor := testutil.CreateDoctor(t, db)
		for i := 0; i < patients; i++ {
			p := testutil.CreatePatient(t, db)
			testutil.Assign(t, db, p.ID, doctor.ID, testutil.Day(2024, 1, 1), nil)
			testutil.AddMeasurement(t, db, p.ID, now.Add(-time.Hour), 120+i)
		}

		queries := 0
		require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:count", func(*gorm.DB) { queries++ }))
		require.NoError(t, db.Callback().Raw().After("gorm:raw").Register("test:count_raw", func(*gorm.DB) { queries++ }))

		svc := NewService(repository.New(db, nil), clock.Fixed(now), nil)
		_, err := svc.GetDoctorDashboard(context.Background(), doctor.ID)
		require.NoError(t, err)
		return queries
	}

	assert.Equal(t, countFor(1), countFor(8))
}

func TestGetDoctorDashboardEmptyAndInvalid(t *testing.T) {
	db := testutil.NewTestDB(t, "dashboard_empty")
	svc := NewService(repository.New(db, nil), clock.Fixed(now), nil)
	doctor := testutil.CreateDoctor(t, db)

	summary, err := svc.GetDoctorDashboard(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.InLinePatients)
	assert.Empty(t, summary.HighAvgGlucosePatients)
	assert.Zero(t, summary.GlycemiaAlerts.TotalOpen)
	assert.NotNil(t, summary.GlycemiaAlerts.Alerts)

	_, err = svc.GetDoctorDashboard(context.Background(), 0)
	assert.ErrorIs(t, err, apperr.BadRequest)
	_, err = svc.GetDoctorDashboard(context.Background(), 9999)
	assert.ErrorIs(t, err, apperr.NotFound)
}
