package repository

import (
	"context"

	"github.com/glucotrack/glucotrack-api/model"
)

func (r *gormRepository) InsertChangeLog(ctx context.Context, entry *model.ChangeLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.db.NowFunc()
	}
	return r.conn(ctx).Create(entry).Error
}

func (r *gormRepository) QueryChangeLogs(ctx context.Context, entity string, recordID uint) ([]model.ChangeLog, error) {
	var entries []model.ChangeLog
	err := r.conn(ctx).
		Where("entity = ? AND record_id = ?", entity, recordID).
		Order("timestamp, id").
		Find(&entries).Error
	return entries, err
}
