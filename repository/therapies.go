package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
)

func (r *gormRepository) QueryTherapies(ctx context.Context, q TherapyQuery) ([]model.Therapy, error) {
	var therapies []model.Therapy
	tx := r.conn(ctx).Model(&model.Therapy{})
	if q.UserID != 0 {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.DoctorID != 0 {
		tx = tx.Where("doctor_id = ?", q.DoctorID)
	}
	if q.WithSchedules {
		tx = tx.Preload("Schedules")
	}
	tx = tx.Order("created_at DESC, id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	err := tx.Find(&therapies).Error
	return therapies, err
}

func (r *gormRepository) FindTherapy(ctx context.Context, id uint) (*model.Therapy, error) {
	var t model.Therapy
	if err := r.conn(ctx).Preload("Schedules").First(&t, id).Error; err != nil {
		return nil, notFound(err, "therapy", id)
	}
	return &t, nil
}

// FindTherapySuccessor returns the version that replaced id, or nil when id
// heads its chain.
func (r *gormRepository) FindTherapySuccessor(ctx context.Context, id uint) (*model.Therapy, error) {
	var t model.Therapy
	err := r.conn(ctx).Where("previous_therapy_id = ?", id).Order("id").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RelinkTherapy points id at a new predecessor. A nil previousID detaches it.
func (r *gormRepository) RelinkTherapy(ctx context.Context, id uint, previousID *uint) error {
	res := r.conn(ctx).
		Model(&model.Therapy{}).
		Where("id = ?", id).
		Update("previous_therapy_id", previousID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: therapy %d", apperr.NotFound, id)
	}
	return nil
}

func (r *gormRepository) QueryMedicationSchedules(ctx context.Context, therapyIDs []uint) ([]model.MedicationSchedule, error) {
	var schedules []model.MedicationSchedule
	if len(therapyIDs) == 0 {
		return schedules, nil
	}
	err := r.conn(ctx).Where("therapy_id IN ?", therapyIDs).Order("therapy_id, id").Find(&schedules).Error
	return schedules, err
}

// CountScheduledIntakes fetches every candidate intake in one query and
// counts, per schedule, those whose calendar day falls inside its window.
func (r *gormRepository) CountScheduledIntakes(ctx context.Context, windows []IntakeWindow) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(windows))
	if len(windows) == 0 {
		return counts, nil
	}

	byID := make(map[uint]IntakeWindow, len(windows))
	ids := make([]uint, 0, len(windows))
	from, to := clock.DayStart(windows[0].From), clock.DayStart(windows[0].To)
	for _, w := range windows {
		byID[w.ScheduleID] = w
		ids = append(ids, w.ScheduleID)
		counts[w.ScheduleID] = 0
		if f := clock.DayStart(w.From); f.Before(from) {
			from = f
		}
		if t := clock.DayStart(w.To); t.After(to) {
			to = t
		}
	}

	var intakes []model.MedicationIntake
	err := r.conn(ctx).
		Select("medication_schedule_id", "intake_at").
		Where("medication_schedule_id IN ? AND intake_at >= ? AND intake_at < ?", ids, from, to.AddDate(0, 0, 1)).
		Find(&intakes).Error
	if err != nil {
		return nil, err
	}

	for _, in := range intakes {
		if in.MedicationScheduleID == nil {
			continue
		}
		w, ok := byID[*in.MedicationScheduleID]
		if !ok {
			continue
		}
		day := clock.DayStart(in.IntakeAt)
		if day.Before(clock.DayStart(w.From)) || day.After(clock.DayStart(w.To)) {
			continue
		}
		counts[w.ScheduleID]++
	}
	return counts, nil
}

func (r *gormRepository) QueryExtraIntakes(ctx context.Context, userID uint, since time.Time) ([]model.MedicationIntake, error) {
	var intakes []model.MedicationIntake
	err := r.conn(ctx).
		Where("user_id = ? AND medication_schedule_id IS NULL AND intake_at >= ?", userID, since.UTC()).
		Order("intake_at DESC, id DESC").
		Find(&intakes).Error
	return intakes, err
}

// InsertTherapy creates the therapy together with its schedules.
func (r *gormRepository) InsertTherapy(ctx context.Context, t *model.Therapy) error {
	return r.conn(ctx).Create(t).Error
}

func (r *gormRepository) CloseTherapy(ctx context.Context, id uint, end time.Time) error {
	res := r.conn(ctx).
		Model(&model.Therapy{}).
		Where("id = ?", id).
		Update("end_date", datatypes.Date(clock.DayStart(end)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: therapy %d", apperr.NotFound, id)
	}
	return nil
}

// DeleteTherapy removes a therapy and its schedules.
func (r *gormRepository) DeleteTherapy(ctx context.Context, id uint) error {
	if err := r.conn(ctx).Where("therapy_id = ?", id).Delete(&model.MedicationSchedule{}).Error; err != nil {
		return err
	}
	res := r.conn(ctx).Delete(&model.Therapy{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: therapy %d", apperr.NotFound, id)
	}
	return nil
}

func (r *gormRepository) InsertMedicationIntake(ctx context.Context, in *model.MedicationIntake) error {
	in.IntakeAt = in.IntakeAt.UTC()
	return r.conn(ctx).Create(in).Error
}

// QueryMedicationIntakes lists a patient's intakes in [from, to), oldest first.
func (r *gormRepository) QueryMedicationIntakes(ctx context.Context, userID uint, from, to time.Time) ([]model.MedicationIntake, error) {
	var intakes []model.MedicationIntake
	err := r.conn(ctx).
		Where("user_id = ? AND intake_at >= ? AND intake_at < ?", userID, from.UTC(), to.UTC()).
		Order("intake_at, id").
		Find(&intakes).Error
	return intakes, err
}
