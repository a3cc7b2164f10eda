package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
)

func (r *gormRepository) FindUser(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.conn(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (r *gormRepository) FindUsersByRole(ctx context.Context, roleID uint) ([]model.User, error) {
	var users []model.User
	err := r.conn(ctx).Where("role_id = ?", roleID).Order("id").Find(&users).Error
	return users, err
}

func (r *gormRepository) FindCurrentDoctorForPatient(ctx context.Context, patientID uint, day time.Time) (*model.PatientDoctor, error) {
	var pd model.PatientDoctor
	err := r.conn(ctx).
		Where("patient_id = ? AND (end_date IS NULL OR end_date > ?)", patientID, datatypes.Date(clock.DayStart(day))).
		Order("start_date DESC, id DESC").
		First(&pd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pd, nil
}

func (r *gormRepository) FindCurrentPatientsForDoctor(ctx context.Context, doctorID uint, day time.Time) ([]model.User, error) {
	var patients []model.User
	sub := r.conn(ctx).
		Model(&model.PatientDoctor{}).
		Select("patient_id").
		Where("doctor_id = ? AND (end_date IS NULL OR end_date > ?)", doctorID, datatypes.Date(clock.DayStart(day)))
	err := r.conn(ctx).
		Where("id IN (?)", sub).
		Order("last_name, first_name, id").
		Find(&patients).Error
	return patients, err
}

// QueryPatients lists patient accounts matching q, ordered by name.
func (r *gormRepository) QueryPatients(ctx context.Context, q PatientQuery) ([]model.User, error) {
	var patients []model.User
	day := clock.DayStart(q.Day)
	tx := r.conn(ctx).Where("role_id = ?", model.RolePatient)
	if q.DoctorID != 0 {
		sub := r.conn(ctx).
			Model(&model.PatientDoctor{}).
			Select("patient_id").
			Where("doctor_id = ? AND (end_date IS NULL OR end_date > ?)", q.DoctorID, datatypes.Date(day))
		tx = tx.Where("id IN (?)", sub)
	}
	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}
	if q.Gender != "" {
		tx = tx.Where("gender = ?", q.Gender)
	}
	if q.MinAge > 0 {
		tx = tx.Where("birth_date <= ?", datatypes.Date(day.AddDate(-q.MinAge, 0, 0)))
	}
	if q.MaxAge > 0 {
		tx = tx.Where("birth_date > ?", datatypes.Date(day.AddDate(-(q.MaxAge+1), 0, 0)))
	}
	tx = tx.Order("last_name, first_name, id")
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	err := tx.Find(&patients).Error
	return patients, err
}
