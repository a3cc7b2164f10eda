package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTherapyActiveOn(t *testing.T) {
	end := datatypes.Date(date(2024, 5, 10))
	closed := Therapy{StartDate: datatypes.Date(date(2024, 5, 1)), EndDate: &end}
	open := Therapy{StartDate: datatypes.Date(date(2024, 5, 10))}

	tests := []struct {
		name    string
		therapy Therapy
		day     time.Time
		want    bool
	}{
		{"before start", closed, date(2024, 4, 30), false},
		{"on start", closed, date(2024, 5, 1), true},
		{"inside", closed, date(2024, 5, 9).Add(20 * time.Hour), true},
		{"on end is exclusive", closed, date(2024, 5, 10), false},
		{"open end", open, date(2030, 1, 1), true},
		{"open before start", open, date(2024, 5, 9), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.therapy.ActiveOn(tt.day))
		})
	}

	// Closing one version on day D and starting the next on D leaves no overlap.
	next := Therapy{StartDate: end}
	for d := date(2024, 5, 1); d.Before(date(2024, 5, 20)); d = d.AddDate(0, 0, 1) {
		assert.False(t, closed.ActiveOn(d) && next.ActiveOn(d), "overlap on %s", d)
	}
}

func TestEffectiveDailyIntakes(t *testing.T) {
	assert.Equal(t, 1, MedicationSchedule{DailyIntakes: 0}.EffectiveDailyIntakes())
	assert.Equal(t, 1, MedicationSchedule{DailyIntakes: -2}.EffectiveDailyIntakes())
	assert.Equal(t, 3, MedicationSchedule{DailyIntakes: 3}.EffectiveDailyIntakes())
}

func TestTherapyPersistsWithSchedules(t *testing.T) {
	db := setupTestDB(t, "therapy", &Therapy{}, &MedicationSchedule{})

	th := Therapy{
		UserID:    3,
		DoctorID:  2,
		Title:     "Insulin",
		StartDate: datatypes.Date(date(2024, 5, 1)),
		Schedules: []MedicationSchedule{{MedicationName: "Metformin", Quantity: 500, Unit: "mg", DailyIntakes: 2}},
	}
	require.NoError(t, db.Create(&th).Error)
	require.NotZero(t, th.Schedules[0].ID)

	var loaded Therapy
	require.NoError(t, db.Preload("Schedules").First(&loaded, th.ID).Error)
	assert.Equal(t, date(2024, 5, 1), loaded.Start())
	assert.Nil(t, loaded.End())
	assert.Len(t, loaded.Schedules, 1)
}

func TestPatientDoctorCurrentOn(t *testing.T) {
	end := datatypes.Date(date(2024, 5, 10))
	pd := PatientDoctor{StartDate: datatypes.Date(date(2024, 1, 1)), EndDate: &end}
	assert.True(t, pd.CurrentOn(date(2024, 5, 9)))
	assert.False(t, pd.CurrentOn(date(2024, 5, 10)))
	assert.True(t, PatientDoctor{}.CurrentOn(date(2099, 1, 1)))
}

func TestUserFullNameAndSnapshot(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())

	js, err := Snapshot(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(js))

	js, err = Snapshot(nil)
	require.NoError(t, err)
	assert.Nil(t, js)
}
