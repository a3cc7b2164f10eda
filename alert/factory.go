package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

// GlycemiaAlertRequest describes a high glucose reading to alert on. An
// empty Level is derived from Value; an empty Message gets a default text.
type GlycemiaAlertRequest struct {
	SubjectID  uint
	Value      int
	MeasuredAt time.Time
	Level      string
	Message    string
}

// Outcome reports whether an alert was persisted. A false Created with a
// Reason is a normal result, not a failure.
type Outcome struct {
	Created bool   `json:"created"`
	AlertID uint   `json:"alert_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Event is published to every recipient once an alert is committed.
type Event struct {
	AlertID     uint      `json:"alert_id"`
	SubjectID   uint      `json:"subject_id"`
	RecipientID uint      `json:"recipient_id"`
	Label       string    `json:"label"`
	Level       Severity  `json:"level"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notifier delivers committed alerts to recipients.
type Notifier interface {
	AlertCreated(ctx context.Context, ev Event) error
}

type nopNotifier struct{}

func (nopNotifier) AlertCreated(context.Context, Event) error { return nil }

// Factory creates glycemic alerts: it validates, deduplicates, resolves
// recipients and persists the alert with its recipients atomically.
type Factory struct {
	repo       repository.Repository
	dedup      *Deduplicator
	recipients *RecipientResolver
	notifier   Notifier
	types      *cache.Cache
	clock      clock.Clock
	log        *logger.Logger
}

// Option customises a Factory.
type Option func(*Factory)

// WithNotifier publishes every created alert through n.
func WithNotifier(n Notifier) Option {
	return func(f *Factory) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(f *Factory) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithTypeCacheTTL sets how long alert types stay cached.
func WithTypeCacheTTL(ttl time.Duration) Option {
	return func(f *Factory) {
		if ttl > 0 {
			f.types = cache.New(ttl, 2*ttl)
		}
	}
}

// NewFactory returns a Factory backed by repo. Without options it uses the
// system clock and does not notify anyone.
func NewFactory(repo repository.Repository, log *logger.Logger, opts ...Option) *Factory {
	if log == nil {
		log = logger.Nop()
	}
	f := &Factory{
		repo:     repo,
		notifier: nopNotifier{},
		types:    cache.New(10*time.Minute, 20*time.Minute),
		clock:    clock.System(),
		log:      log.With("component", "alert.factory"),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.dedup = NewDeduplicator(repo)
	f.recipients = NewRecipientResolver(repo, f.clock)
	return f
}

// DefaultMessage renders the standard alert text for a reading.
func DefaultMessage(sev Severity, value int, at time.Time) string {
	var prefix string
	switch sev {
	case SeverityCritical:
		prefix = "Critical glycemia value"
	case SeveritySevere:
		prefix = "Severely high glycemia"
	default:
		prefix = "Moderately high glycemia"
	}
	at = at.UTC()
	return fmt.Sprintf("%s: %d mg/dL at %s on %s", prefix, value, at.Format("15:04"), at.Format("02/01/2006"))
}

func (f *Factory) alertType(ctx context.Context, label string) (*model.AlertType, error) {
	if v, ok := f.types.Get(label); ok {
		at := v.(model.AlertType)
		return &at, nil
	}
	at, err := f.repo.FindAlertTypeByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAlertType, label)
		}
		return nil, err
	}
	f.types.SetDefault(label, *at)
	return at, nil
}

// CreateGlycemiaAlert raises an alert for an explicit severity. Policy
// short-circuits are reported in the Outcome with a nil error.
func (f *Factory) CreateGlycemiaAlert(ctx context.Context, req GlycemiaAlertRequest) (Outcome, error) {
	if req.SubjectID == 0 {
		return Outcome{}, ErrInvalidSubject
	}
	if !Bands.Plausible(req.Value) {
		return Outcome{}, fmt.Errorf("%w: %d mg/dL", ErrImplausibleValue, req.Value)
	}

	var sev Severity
	var err error
	if req.Level == "" {
		sev, err = Classify(req.Value)
	} else {
		sev, err = ParseSeverity(req.Level)
	}
	if err != nil {
		return Outcome{}, err
	}
	label, ok := LabelFor(sev)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s does not raise an alert", ErrUnknownSeverity, sev)
	}

	at, err := f.alertType(ctx, label)
	if err != nil {
		return Outcome{}, err
	}

	measuredAt := req.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = f.clock.Now()
	}
	measuredAt = measuredAt.UTC()
	message := req.Message
	if message == "" {
		message = DefaultMessage(sev, req.Value, measuredAt)
	}

	dup, err := f.dedup.IsDuplicate(ctx, req.SubjectID, at.ID, message, measuredAt)
	if err != nil {
		return Outcome{}, err
	}
	if dup {
		f.log.Debug("duplicate alert suppressed", "subject_id", req.SubjectID, "label", label)
		return Outcome{Reason: ReasonDuplicate}, nil
	}

	recipientIDs, err := f.recipients.ResolveRecipients(ctx, req.SubjectID, sev)
	if errors.Is(err, ErrNoDoctorAssigned) {
		f.log.Warn("critical alert without assigned doctor", "subject_id", req.SubjectID)
		return Outcome{Reason: ReasonNoDoctorAssigned}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	alert := model.Alert{
		UserID:      req.SubjectID,
		AlertTypeID: at.ID,
		Message:     message,
		CreatedAt:   measuredAt,
		Status:      model.AlertStatusOpen,
	}
	err = f.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.InsertAlert(ctx, &alert); err != nil {
			return err
		}
		notifiedAt := f.clock.Now()
		rows := make([]model.AlertRecipient, 0, len(recipientIDs))
		for _, id := range recipientIDs {
			rows = append(rows, model.AlertRecipient{
				AlertID:         alert.ID,
				RecipientUserID: id,
				NotifiedAt:      &notifiedAt,
			})
		}
		return tx.InsertAlertRecipients(ctx, rows)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Outcome{Reason: ReasonDuplicate}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("persist alert: %w", err)
	}

	f.log.Info("alert created", "alert_id", alert.ID, "subject_id", req.SubjectID, "label", label, "recipients", len(recipientIDs))
	f.publish(ctx, alert, sev, label, recipientIDs)
	return Outcome{Created: true, AlertID: alert.ID}, nil
}

// ClassifyAndAlert raises an alert for a stored reading when its value falls
// in an alerting band.
func (f *Factory) ClassifyAndAlert(ctx context.Context, subjectID uint, value int, measuredAt time.Time) (Outcome, error) {
	sev, err := Classify(value)
	if errors.Is(err, ErrImplausibleValue) {
		return Outcome{Reason: ReasonImplausibleValue}, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	if sev == SeverityNone {
		return Outcome{Reason: ReasonNoAlertRequired}, nil
	}
	return f.CreateGlycemiaAlert(ctx, GlycemiaAlertRequest{
		SubjectID:  subjectID,
		Value:      value,
		MeasuredAt: measuredAt,
		Level:      string(sev),
	})
}

func (f *Factory) publish(ctx context.Context, a model.Alert, sev Severity, label string, recipients []uint) {
	for _, id := range recipients {
		ev := Event{
			AlertID:     a.ID,
			SubjectID:   a.UserID,
			RecipientID: id,
			Label:       label,
			Level:       sev,
			Message:     a.Message,
			CreatedAt:   a.CreatedAt,
		}
		if err := f.notifier.AlertCreated(ctx, ev); err != nil {
			f.log.Warn("alert notification failed", "alert_id", a.ID, "recipient_id", id, "error", err)
		}
	}
}
