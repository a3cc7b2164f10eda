package alert

import (
	"context"

	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

// Inbox exposes the alerts addressed to a user and their read state.
type Inbox struct {
	repo  repository.Repository
	clock clock.Clock
}

func NewInbox(repo repository.Repository, c clock.Clock) *Inbox {
	if c == nil {
		c = clock.System()
	}
	return &Inbox{repo: repo, clock: c}
}

// ListForRecipient returns the user's alerts newest first, optionally only
// those not yet resolved.
func (i *Inbox) ListForRecipient(ctx context.Context, userID uint, onlyOpen bool) ([]model.RecipientAlert, error) {
	if _, err := i.repo.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	return i.repo.QueryRecipientAlerts(ctx, repository.RecipientAlertQuery{
		RecipientIDs: []uint{userID},
		OnlyOpen:     onlyOpen,
	})
}

// Resolve marks the recipient's copy read and the shared alert resolved.
func (i *Inbox) Resolve(ctx context.Context, alertRecipientID uint) error {
	now := i.clock.Now()
	return i.repo.Transaction(ctx, func(tx repository.Repository) error {
		return tx.ResolveAlertRecipient(ctx, alertRecipientID, now)
	})
}

// MarkRead stamps the recipient's copy as read.
func (i *Inbox) MarkRead(ctx context.Context, alertRecipientID uint) error {
	return i.repo.MarkRecipientRead(ctx, alertRecipientID, i.clock.Now())
}
