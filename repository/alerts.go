package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/model"
)

func (r *gormRepository) FindAlertTypeByLabel(ctx context.Context, label string) (*model.AlertType, error) {
	var at model.AlertType
	if err := r.conn(ctx).Where("label = ?", label).First(&at).Error; err != nil {
		return nil, notFound(err, "alert type", label)
	}
	return &at, nil
}

func (r *gormRepository) FindAlertTypesByLabels(ctx context.Context, labels []string) ([]model.AlertType, error) {
	var types []model.AlertType
	if len(labels) == 0 {
		return types, nil
	}
	err := r.conn(ctx).Where("label IN ?", labels).Order("id").Find(&types).Error
	return types, err
}

// AlertExists matches on the digest for the index and on the message itself
// so a digest collision can never suppress a different alert.
func (r *gormRepository) AlertExists(ctx context.Context, subjectID, alertTypeID uint, message, day string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&model.Alert{}).
		Where("user_id = ? AND alert_type_id = ? AND message_digest = ? AND created_on = ? AND message = ?",
			subjectID, alertTypeID, model.MessageDigest(message), day, message).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) InsertAlert(ctx context.Context, alert *model.Alert) error {
	return r.conn(ctx).Create(alert).Error
}

func (r *gormRepository) InsertAlertRecipients(ctx context.Context, recipients []model.AlertRecipient) error {
	if len(recipients) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&recipients).Error
}

func (r *gormRepository) QueryAlerts(ctx context.Context, q AlertQuery) ([]model.Alert, error) {
	var alerts []model.Alert
	tx := r.conn(ctx).Model(&model.Alert{})
	if len(q.SubjectIDs) > 0 {
		tx = tx.Where("user_id IN ?", q.SubjectIDs)
	}
	if len(q.AlertTypeIDs) > 0 {
		tx = tx.Where("alert_type_id IN ?", q.AlertTypeIDs)
	}
	if q.OnlyOpen {
		tx = tx.Where("status <> ?", model.AlertStatusResolved)
	}
	err := tx.Order("created_at DESC, id DESC").Find(&alerts).Error
	return alerts, err
}

func (r *gormRepository) QueryRecipientAlerts(ctx context.Context, q RecipientAlertQuery) ([]model.RecipientAlert, error) {
	var rows []model.RecipientAlert
	tx := r.conn(ctx).
		Table("alert_recipients AS ar").
		Select(`ar.id AS alert_recipient_id, ar.alert_id, ar.recipient_user_id, ar.is_read, ar.read_at,
			a.user_id AS patient_id, a.alert_type_id, a.message, a.status, a.created_at, a.resolved_at,
			ty.label, ty.description,
			u.first_name AS patient_first_name, u.last_name AS patient_last_name`).
		Joins("JOIN alerts AS a ON a.id = ar.alert_id").
		Joins("JOIN alert_types AS ty ON ty.id = a.alert_type_id").
		Joins("LEFT JOIN users AS u ON u.id = a.user_id")
	if len(q.RecipientIDs) > 0 {
		tx = tx.Where("ar.recipient_user_id IN ?", q.RecipientIDs)
	}
	if len(q.AlertTypeIDs) > 0 {
		tx = tx.Where("a.alert_type_id IN ?", q.AlertTypeIDs)
	}
	if q.OnlyOpen {
		tx = tx.Where("a.status <> ?", model.AlertStatusResolved)
	}
	tx = tx.Order("a.created_at DESC, a.id DESC, ar.id")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	err := tx.Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) FindAlertRecipient(ctx context.Context, id uint) (*model.AlertRecipient, error) {
	var ar model.AlertRecipient
	if err := r.conn(ctx).First(&ar, id).Error; err != nil {
		return nil, notFound(err, "alert recipient", id)
	}
	return &ar, nil
}

// ResolveAlertRecipient marks the recipient row read and the shared alert
// resolved. Callers wanting both updates atomically run it inside Transaction.
func (r *gormRepository) ResolveAlertRecipient(ctx context.Context, id uint, at time.Time) error {
	ar, err := r.FindAlertRecipient(ctx, id)
	if err != nil {
		return err
	}
	if err := r.markRead(ctx, ar.ID, at); err != nil {
		return err
	}
	res := r.conn(ctx).
		Model(&model.Alert{}).
		Where("id = ?", ar.AlertID).
		Updates(map[string]any{"status": model.AlertStatusResolved, "resolved_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: alert %d", apperr.NotFound, ar.AlertID)
	}
	return nil
}

func (r *gormRepository) MarkRecipientRead(ctx context.Context, id uint, at time.Time) error {
	if _, err := r.FindAlertRecipient(ctx, id); err != nil {
		return err
	}
	return r.markRead(ctx, id, at)
}

func (r *gormRepository) markRead(ctx context.Context, id uint, at time.Time) error {
	return r.conn(ctx).
		Model(&model.AlertRecipient{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_read": true, "read_at": at}).Error
}
