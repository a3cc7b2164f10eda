// Package analytics assembles the per-patient clinical overview shown to
// doctors: glucose trends and distribution, therapy adherence and recent
// clinical events.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

const (
	trendWeeks         = 4
	distributionMonths = 6
	recentLimit        = 10
	extraIntakeDays    = 30
)

// PatientProfile is the demographic header of the analytics view.
type PatientProfile struct {
	UserID    uint       `json:"user_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	Height    *float64   `json:"height,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
}

// WeeklyTrend holds one ISO week of readings. Empty weeks are all zeros.
type WeeklyTrend struct {
	Period  string  `json:"period"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
}

// Adherence compares intakes taken with intakes prescribed over the
// therapies of the last months. The percent is 0 when nothing was scheduled.
type Adherence struct {
	ScheduledIntakes int     `json:"scheduled_intakes"`
	PerformedIntakes int     `json:"performed_intakes"`
	AdherencePercent float64 `json:"adherence_percent"`
}

// ExtraIntake is a dose taken outside any therapy schedule.
type ExtraIntake struct {
	MedicationName string    `json:"medication_name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	IntakeAt       time.Time `json:"intake_at"`
	Note           *string   `json:"note,omitempty"`
}

// PatientAnalytics is everything a doctor sees about one patient.
type PatientAnalytics struct {
	Patient        PatientProfile              `json:"patient"`
	GlycemicTrends []WeeklyTrend               `json:"glycemic_trends"`
	Last4WeekStats Stats                       `json:"last_4_week_stats"`
	Distribution   *Distribution               `json:"distribution"`
	Adherence      Adherence                   `json:"adherence"`
	RecentSymptoms []model.Symptom             `json:"recent_symptoms"`
	RecentAlerts   []model.RecipientAlert      `json:"recent_alerts"`
	Comorbidities  []model.ClinicalComorbidity `json:"comorbidities"`
	RiskFactors    []model.RiskFactor          `json:"risk_factors"`
	ExtraIntakes   []ExtraIntake               `json:"extra_intakes"`
}

// Service builds the patient analytics view.
type Service struct {
	repo  repository.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewService(repo repository.Repository, c clock.Clock, log *logger.Logger) *Service {
	if c == nil {
		c = clock.System()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, clock: c, log: log.With("component", "analytics")}
}

// GetPatientAnalytics assembles the analytics view of one patient.
func (s *Service) GetPatientAnalytics(ctx context.Context, patientID uint) (*PatientAnalytics, error) {
	if patientID == 0 {
		return nil, fmt.Errorf("%w: invalid patient id", apperr.BadRequest)
	}
	user, err := s.repo.FindUser(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if user.RoleID != model.RolePatient {
		return nil, fmt.Errorf("%w: patient %d", apperr.NotFound, patientID)
	}

	now := s.clock.Now()
	out := &PatientAnalytics{Patient: profileOf(*user)}

	from := now.AddDate(0, -distributionMonths, 0)
	measurements, err := s.repo.QueryGlycemicMeasurements(ctx, repository.MeasurementQuery{
		UserIDs: []uint{patientID},
		From:    &from,
	})
	if err != nil {
		return nil, err
	}
	out.GlycemicTrends = WeeklyTrends(measurements, now, trendWeeks)

	windowStart := clock.WeekStart(now).AddDate(0, 0, -7*(trendWeeks-1))
	recent := lo.Filter(measurements, func(m model.GlycemicMeasurement, _ int) bool {
		return !m.MeasuredAt.UTC().Before(windowStart)
	})
	out.Last4WeekStats = Summarize(values(recent))
	out.Distribution = ComputeDistribution(values(measurements))

	if out.Adherence, err = s.adherence(ctx, patientID, now); err != nil {
		return nil, err
	}

	if out.RecentSymptoms, err = s.repo.QuerySymptoms(ctx, patientID, recentLimit); err != nil {
		return nil, err
	}
	if out.RecentAlerts, err = s.repo.QueryRecipientAlerts(ctx, repository.RecipientAlertQuery{
		RecipientIDs: []uint{patientID},
		Limit:        recentLimit,
	}); err != nil {
		return nil, err
	}
	if out.Comorbidities, err = s.repo.QueryComorbidities(ctx, patientID); err != nil {
		return nil, err
	}
	if out.RiskFactors, err = s.repo.QueryRiskFactors(ctx, patientID); err != nil {
		return nil, err
	}

	extras, err := s.repo.QueryExtraIntakes(ctx, patientID, clock.DayStart(now).AddDate(0, 0, -extraIntakeDays))
	if err != nil {
		return nil, err
	}
	out.ExtraIntakes = lo.Map(extras, func(in model.MedicationIntake, _ int) ExtraIntake {
		return ExtraIntake{
			MedicationName: lo.FromPtr(in.MedicationTakenName),
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			IntakeAt:       in.IntakeAt,
			Note:           in.Note,
		}
	})

	return out, nil
}

func profileOf(u model.User) PatientProfile {
	p := PatientProfile{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Gender:    u.Gender,
		Height:    u.Height,
		Weight:    u.Weight,
	}
	if u.BirthDate != nil {
		bd := time.Time(*u.BirthDate)
		p.BirthDate = &bd
	}
	return p
}

func values(ms []model.GlycemicMeasurement) []int {
	return lo.Map(ms, func(m model.GlycemicMeasurement, _ int) int { return m.Value })
}

// WeeklyTrends buckets readings into the last n ISO weeks ending with the
// week containing now, oldest first.
func WeeklyTrends(ms []model.GlycemicMeasurement, now time.Time, n int) []WeeklyTrend {
	current := clock.WeekStart(now)
	out := make([]WeeklyTrend, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := current.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)
		week := lo.Filter(ms, func(m model.GlycemicMeasurement, _ int) bool {
			at := m.MeasuredAt.UTC()
			return !at.Before(start) && at.Before(end)
		})

		t := WeeklyTrend{Period: clock.WeekKey(start)}
		if vs := values(week); len(vs) > 0 {
			t.Average = mean(vs)
			t.Min = float64(lo.Min(vs))
			t.Max = float64(lo.Max(vs))
			t.StdDev = popStdDev(vs)
		}
		out = append(out, t)
	}
	return out
}

// adherence loads therapies, their schedules and intake counts with one
// query each.
func (s *Service) adherence(ctx context.Context, patientID uint, now time.Time) (Adherence, error) {
	therapies, err := s.repo.QueryTherapies(ctx, repository.TherapyQuery{UserID: patientID})
	if err != nil {
		return Adherence{}, err
	}
	schedules, err := s.repo.QueryMedicationSchedules(ctx, lo.Map(therapies, func(t model.Therapy, _ int) uint { return t.ID }))
	if err != nil {
		return Adherence{}, err
	}
	byTherapy := lo.GroupBy(schedules, func(ms model.MedicationSchedule) uint { return ms.TherapyID })

	windows := TherapyWindows(therapies, byTherapy, now)
	counts, err := s.repo.CountScheduledIntakes(ctx, windows)
	if err != nil {
		return Adherence{}, err
	}
	return ComputeAdherence(therapies, byTherapy, counts, now), nil
}

// therapyRange returns the inclusive day range a therapy is measured over:
// from its start to the earlier of its end date and today.
func therapyRange(t model.Therapy, now time.Time) (from, to time.Time, days int) {
	today := clock.DayStart(now)
	to = today
	if end := t.End(); end != nil && end.Before(today) {
		to = *end
	}
	from = t.Start()
	return from, to, clock.DaysInclusive(from, to)
}

// TherapyWindows lists the intake windows to count, skipping therapies that
// have not started yet.
func TherapyWindows(therapies []model.Therapy, schedules map[uint][]model.MedicationSchedule, now time.Time) []repository.IntakeWindow {
	var windows []repository.IntakeWindow
	for _, t := range therapies {
		from, to, days := therapyRange(t, now)
		if days < 1 {
			continue
		}
		for _, ms := range schedules[t.ID] {
			windows = append(windows, repository.IntakeWindow{ScheduleID: ms.ID, From: from, To: to})
		}
	}
	return windows
}

// ComputeAdherence sums, per schedule, the intakes expected over the part of
// each therapy that has already elapsed and the intakes actually recorded.
func ComputeAdherence(therapies []model.Therapy, schedules map[uint][]model.MedicationSchedule, performed map[uint]int64, now time.Time) Adherence {
	var a Adherence
	for _, t := range therapies {
		_, _, days := therapyRange(t, now)
		if days < 1 {
			continue
		}
		for _, ms := range schedules[t.ID] {
			a.ScheduledIntakes += ms.EffectiveDailyIntakes() * days
			a.PerformedIntakes += int(performed[ms.ID])
		}
	}
	if a.ScheduledIntakes > 0 {
		a.AdherencePercent = math.Round(1000*float64(a.PerformedIntakes)/float64(a.ScheduledIntakes)) / 10
	}
	return a
}
