package alert

import (
	"context"
	"time"

	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/repository"
)

// Deduplicator enforces at most one alert per subject, type, exact message
// and calendar day. The unique index on alerts backs the same rule for
// concurrent writers.
type Deduplicator struct {
	alerts repository.AlertRepository
}

func NewDeduplicator(alerts repository.AlertRepository) *Deduplicator {
	return &Deduplicator{alerts: alerts}
}

// IsDuplicate reports whether an identical alert was already raised on the
// day of occurredOn.
func (d *Deduplicator) IsDuplicate(ctx context.Context, subjectID, alertTypeID uint, message string, occurredOn time.Time) (bool, error) {
	return d.alerts.AlertExists(ctx, subjectID, alertTypeID, message, clock.DayKey(occurredOn))
}
