package repository

import (
	"context"

	"github.com/glucotrack/glucotrack-api/model"
)

func (r *gormRepository) QueryGlycemicMeasurements(ctx context.Context, q MeasurementQuery) ([]model.GlycemicMeasurement, error) {
	var out []model.GlycemicMeasurement
	tx := r.conn(ctx).Model(&model.GlycemicMeasurement{})
	if len(q.UserIDs) > 0 {
		tx = tx.Where("user_id IN ?", q.UserIDs)
	}
	if q.From != nil {
		tx = tx.Where("measured_at >= ?", q.From.UTC())
	}
	if q.To != nil {
		tx = tx.Where("measured_at < ?", q.To.UTC())
	}
	err := tx.Order("measured_at, id").Find(&out).Error
	return out, err
}

func (r *gormRepository) FindGlycemicMeasurement(ctx context.Context, id uint) (*model.GlycemicMeasurement, error) {
	var m model.GlycemicMeasurement
	if err := r.conn(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "glycemic measurement", id)
	}
	return &m, nil
}

func (r *gormRepository) InsertGlycemicMeasurement(ctx context.Context, m *model.GlycemicMeasurement) error {
	m.MeasuredAt = m.MeasuredAt.UTC()
	return r.conn(ctx).Create(m).Error
}

func (r *gormRepository) UpdateGlycemicMeasurement(ctx context.Context, m *model.GlycemicMeasurement) error {
	if _, err := r.FindGlycemicMeasurement(ctx, m.ID); err != nil {
		return err
	}
	m.MeasuredAt = m.MeasuredAt.UTC()
	return r.conn(ctx).
		Model(&model.GlycemicMeasurement{ID: m.ID}).
		Select("user_id", "measured_at", "value", "measurement_type_id", "meal_type_id", "note").
		Updates(m).Error
}

func (r *gormRepository) DeleteGlycemicMeasurement(ctx context.Context, id uint) error {
	return deleteByID(r.conn(ctx), &model.GlycemicMeasurement{}, "glycemic measurement", id)
}
