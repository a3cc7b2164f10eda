// Package dashboard summarises a doctor's patients and open glycemic alerts.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

const (
	// TrendThreshold is the mg/dL change between weekly averages needed to
	// report a trend other than stable.
	TrendThreshold = 5.0
	// HighAverageThreshold separates in-line patients from high-average ones.
	HighAverageThreshold = 180.0
)

// Trend is the direction of the weekly average.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// PatientSummary is one patient row of the dashboard.
type PatientSummary struct {
	UserID            uint    `json:"user_id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	WeeklyAvgGlycemia float64 `json:"weekly_avg_glycemia"`
	PreviousWeekAvg   float64 `json:"previous_week_avg"`
	Trend             Trend   `json:"trend"`
	HasOpenAlert      bool    `json:"has_open_alert"`
}

// AlertDetail is one open glycemic alert addressed to the doctor.
type AlertDetail struct {
	AlertRecipientID uint           `json:"alert_recipient_id"`
	AlertID          uint           `json:"alert_id"`
	PatientID        uint           `json:"patient_id"`
	PatientFirstName string         `json:"patient_first_name"`
	PatientLastName  string         `json:"patient_last_name"`
	Level            alert.Severity `json:"level"`
	Message          string         `json:"message"`
	CreatedAt        time.Time      `json:"created_at"`
	Status           string         `json:"status"`
}

// AlertSummary tallies the doctor's open glycemic alerts by severity.
type AlertSummary struct {
	TotalOpen     int           `json:"total_open"`
	CriticalCount int           `json:"critical_count"`
	SevereCount   int           `json:"severe_count"`
	MildCount     int           `json:"mild_count"`
	Alerts        []AlertDetail `json:"alerts"`
}

// Summary partitions the doctor's current patients into three buckets:
// in line (average at most 180 and no open glycemic alert), high average
// (average above 180) and needs attention (average at most 180 with an open
// glycemic alert).
type Summary struct {
	InLinePatients         []PatientSummary `json:"in_line_patients"`
	HighAvgGlucosePatients []PatientSummary `json:"high_avg_glucose_patients"`
	NeedsAttentionPatients []PatientSummary `json:"needs_attention_patients"`
	GlycemiaAlerts         AlertSummary     `json:"glycemia_alerts"`
}

// Service builds doctor dashboards.
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
	return &Service{repo: repo, clock: c, log: log.With("component", "dashboard")}
}

// ComputeTrend compares this week's average with last week's. Without data
// in both weeks the trend is stable.
func ComputeTrend(current, previous float64, hasCurrent, hasPrevious bool) Trend {
	if !hasCurrent || !hasPrevious {
		return TrendStable
	}
	switch {
	case current > previous+TrendThreshold:
		return TrendUp
	case current < previous-TrendThreshold:
		return TrendDown
	}
	return TrendStable
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func average(ms []model.GlycemicMeasurement) (float64, bool) {
	if len(ms) == 0 {
		return 0, false
	}
	sum := lo.SumBy(ms, func(m model.GlycemicMeasurement) int { return m.Value })
	return float64(sum) / float64(len(ms)), true
}

// GetDoctorDashboard runs a fixed number of queries regardless of how many
// patients the doctor follows.
func (s *Service) GetDoctorDashboard(ctx context.Context, doctorID uint) (*Summary, error) {
	if doctorID == 0 {
		return nil, fmt.Errorf("%w: invalid doctor id", apperr.BadRequest)
	}
	if _, err := s.repo.FindUser(ctx, doctorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	thisMonday := clock.WeekStart(now)
	prevMonday := thisMonday.AddDate(0, 0, -7)
	nextMonday := thisMonday.AddDate(0, 0, 7)

	patients, err := s.repo.FindCurrentPatientsForDoctor(ctx, doctorID, now)
	if err != nil {
		return nil, err
	}
	glycemicTypes, err := s.repo.FindAlertTypesByLabels(ctx, model.GlycemicAlertLabels)
	if err != nil {
		return nil, err
	}
	typeIDs := lo.Map(glycemicTypes, func(t model.AlertType, _ int) uint { return t.ID })

	summary := &Summary{
		InLinePatients:         []PatientSummary{},
		HighAvgGlucosePatients: []PatientSummary{},
		NeedsAttentionPatients: []PatientSummary{},
	}

	if len(patients) > 0 {
		patientIDs := lo.Map(patients, func(u model.User, _ int) uint { return u.ID })

		measurements, err := s.repo.QueryGlycemicMeasurements(ctx, repository.MeasurementQuery{
			UserIDs: patientIDs,
			From:    &prevMonday,
			To:      &nextMonday,
		})
		if err != nil {
			return nil, err
		}
		openAlerts, err := s.repo.QueryAlerts(ctx, repository.AlertQuery{
			SubjectIDs:   patientIDs,
			AlertTypeIDs: typeIDs,
			OnlyOpen:     true,
		})
		if err != nil {
			return nil, err
		}

		byPatient := lo.GroupBy(measurements, func(m model.GlycemicMeasurement) uint { return m.UserID })
		alerted := lo.Associate(openAlerts, func(a model.Alert) (uint, bool) { return a.UserID, true })

		for _, p := range patients {
			thisWeek, lastWeek := splitWeeks(byPatient[p.ID], thisMonday)
			avg, hasCurrent := average(thisWeek)
			prevAvg, hasPrevious := average(lastWeek)

			ps := PatientSummary{
				UserID:            p.ID,
				FirstName:         p.FirstName,
				LastName:          p.LastName,
				WeeklyAvgGlycemia: round1(avg),
				PreviousWeekAvg:   round1(prevAvg),
				Trend:             ComputeTrend(avg, prevAvg, hasCurrent, hasPrevious),
				HasOpenAlert:      alerted[p.ID],
			}
			switch {
			case avg > HighAverageThreshold:
				summary.HighAvgGlucosePatients = append(summary.HighAvgGlucosePatients, ps)
			case ps.HasOpenAlert:
				summary.NeedsAttentionPatients = append(summary.NeedsAttentionPatients, ps)
			default:
				summary.InLinePatients = append(summary.InLinePatients, ps)
			}
		}
	}

	alerts, err := s.doctorAlerts(ctx, doctorID, typeIDs)
	if err != nil {
		return nil, err
	}
	summary.GlycemiaAlerts = alerts

	s.log.Debug("dashboard computed", "doctor_id", doctorID, "patients", len(patients), "open_alerts", alerts.TotalOpen)
	return summary, nil
}

func splitWeeks(ms []model.GlycemicMeasurement, thisMonday time.Time) (thisWeek, lastWeek []model.GlycemicMeasurement) {
	for _, m := range ms {
		if m.MeasuredAt.UTC().Before(thisMonday) {
			lastWeek = append(lastWeek, m)
		} else {
			thisWeek = append(thisWeek, m)
		}
	}
	return thisWeek, lastWeek
}

func (s *Service) doctorAlerts(ctx context.Context, doctorID uint, typeIDs []uint) (AlertSummary, error) {
	out := AlertSummary{Alerts: []AlertDetail{}}
	if len(typeIDs) == 0 {
		return out, nil
	}
	rows, err := s.repo.QueryRecipientAlerts(ctx, repository.RecipientAlertQuery{
		RecipientIDs: []uint{doctorID},
		AlertTypeIDs: typeIDs,
		OnlyOpen:     true,
	})
	if err != nil {
		return out, err
	}

	for _, r := range rows {
		level := alert.SeverityOf(r.Label)
		switch level {
		case alert.SeverityCritical:
			out.CriticalCount++
		case alert.SeveritySevere:
			out.SevereCount++
		case alert.SeverityMild:
			out.MildCount++
		}
		out.Alerts = append(out.Alerts, AlertDetail{
			AlertRecipientID: r.AlertRecipientID,
			AlertID:          r.AlertID,
			PatientID:        r.PatientID,
			PatientFirstName: r.PatientFirstName,
			PatientLastName:  r.PatientLastName,
			Level:            level,
			Message:          r.Message,
			CreatedAt:        r.CreatedAt,
			Status:           r.Status,
		})
	}
	out.TotalOpen = len(rows)
	return out, nil
}
