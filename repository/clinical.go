package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/model"
)

func (r *gormRepository) QuerySymptoms(ctx context.Context, userID uint, limit int) ([]model.Symptom, error) {
	var symptoms []model.Symptom
	tx := r.conn(ctx).Where("user_id = ?", userID).Order("occurred_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&symptoms).Error
	return symptoms, err
}

// QuerySymptomsBetween lists symptoms in [from, to), oldest first.
func (r *gormRepository) QuerySymptomsBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.Symptom, error) {
	var symptoms []model.Symptom
	err := r.conn(ctx).
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, from.UTC(), to.UTC()).
		Order("occurred_at, id").
		Find(&symptoms).Error
	return symptoms, err
}

func (r *gormRepository) FindSymptom(ctx context.Context, id uint) (*model.Symptom, error) {
	var s model.Symptom
	if err := r.conn(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err, "symptom", id)
	}
	return &s, nil
}

func (r *gormRepository) DeleteSymptom(ctx context.Context, id uint) error {
	return deleteByID(r.conn(ctx), &model.Symptom{}, "symptom", id)
}

func (r *gormRepository) QueryReportedConditions(ctx context.Context, userID uint) ([]model.ReportedCondition, error) {
	var conditions []model.ReportedCondition
	err := r.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&conditions).Error
	return conditions, err
}

func (r *gormRepository) QueryComorbidities(ctx context.Context, userID uint) ([]model.ClinicalComorbidity, error) {
	var rows []model.ClinicalComorbidity
	err := r.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *gormRepository) FindComorbidity(ctx context.Context, id uint) (*model.ClinicalComorbidity, error) {
	var c model.ClinicalComorbidity
	if err := r.conn(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "comorbidity", id)
	}
	return &c, nil
}

func (r *gormRepository) InsertComorbidity(ctx context.Context, c *model.ClinicalComorbidity) error {
	return r.conn(ctx).Create(c).Error
}

func (r *gormRepository) UpdateComorbidity(ctx context.Context, c *model.ClinicalComorbidity) error {
	if _, err := r.FindComorbidity(ctx, c.ID); err != nil {
		return err
	}
	return r.conn(ctx).
		Model(&model.ClinicalComorbidity{ID: c.ID}).
		Select("comorbidity", "start_date", "end_date").
		Updates(c).Error
}

func (r *gormRepository) DeleteComorbidity(ctx context.Context, id uint) error {
	return deleteByID(r.conn(ctx), &model.ClinicalComorbidity{}, "comorbidity", id)
}

func (r *gormRepository) QueryRiskFactors(ctx context.Context, userID uint) ([]model.RiskFactor, error) {
	var factors []model.RiskFactor
	sub := r.conn(ctx).Model(&model.PatientRiskFactor{}).Select("risk_factor_id").Where("user_id = ?", userID)
	err := r.conn(ctx).Where("id IN (?)", sub).Order("label").Find(&factors).Error
	return factors, err
}

func (r *gormRepository) FindRiskFactorsByIDs(ctx context.Context, ids []uint) ([]model.RiskFactor, error) {
	var factors []model.RiskFactor
	if len(ids) == 0 {
		return factors, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Order("id").Find(&factors).Error
	return factors, err
}

func (r *gormRepository) QueryPatientRiskFactors(ctx context.Context, userID uint) ([]model.PatientRiskFactor, error) {
	var rows []model.PatientRiskFactor
	err := r.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *gormRepository) InsertPatientRiskFactor(ctx context.Context, prf *model.PatientRiskFactor) error {
	return r.conn(ctx).Create(prf).Error
}

func (r *gormRepository) DeletePatientRiskFactor(ctx context.Context, userID, riskFactorID uint) error {
	res := r.conn(ctx).
		Where("user_id = ? AND risk_factor_id = ?", userID, riskFactorID).
		Delete(&model.PatientRiskFactor{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: risk factor %d for user %d", apperr.NotFound, riskFactorID, userID)
	}
	return nil
}

func (r *gormRepository) InsertSymptom(ctx context.Context, s *model.Symptom) error {
	s.OccurredAt = s.OccurredAt.UTC()
	return r.conn(ctx).Create(s).Error
}
