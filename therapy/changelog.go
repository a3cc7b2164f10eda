package therapy

import (
	"context"
	"fmt"
	"time"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

// therapySnapshot is the audited shape of a therapy row.
type therapySnapshot struct {
	ID                uint       `json:"id"`
	DoctorID          uint       `json:"doctor_id"`
	UserID            uint       `json:"user_id"`
	Title             string     `json:"title"`
	Instructions      string     `json:"instructions"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	PreviousTherapyID *uint      `json:"previous_therapy_id"`
	CreatedAt         time.Time  `json:"created_at"`
}

func snapshotOf(t *model.Therapy) therapySnapshot {
	return therapySnapshot{
		ID:                t.ID,
		DoctorID:          t.DoctorID,
		UserID:            t.UserID,
		Title:             t.Title,
		Instructions:      t.Instructions,
		StartDate:         t.Start(),
		EndDate:           t.End(),
		PreviousTherapyID: t.PreviousTherapyID,
		CreatedAt:         t.CreatedAt,
	}
}

func record(ctx context.Context, tx repository.ChangeLogWriter, doctorID uint, entity string, recordID uint, action string, before, after any) error {
	entry, err := model.NewChangeLog(doctorID, entity, recordID, action, before, after)
	if err != nil {
		return err
	}
	return tx.InsertChangeLog(ctx, entry)
}

func insertVersion(ctx context.Context, tx repository.Repository, t *model.Therapy) error {
	if err := tx.InsertTherapy(ctx, t); err != nil {
		return err
	}
	if err := record(ctx, tx, t.DoctorID, entityTherapy, t.ID, model.ChangeInsert, nil, snapshotOf(t)); err != nil {
		return err
	}
	for i := range t.Schedules {
		ms := t.Schedules[i]
		if err := record(ctx, tx, t.DoctorID, entitySchedule, ms.ID, model.ChangeInsert, nil, ms); err != nil {
			return err
		}
	}
	return nil
}

func closeVersion(ctx context.Context, tx repository.Repository, t *model.Therapy, doctorID uint, today time.Time) error {
	before := snapshotOf(t)
	if err := tx.CloseTherapy(ctx, t.ID, today); err != nil {
		return err
	}
	closed, err := tx.FindTherapy(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *closed
	return record(ctx, tx, doctorID, entityTherapy, t.ID, model.ChangeSoftDelete, before, snapshotOf(t))
}

func deleteVersion(ctx context.Context, tx repository.Repository, t *model.Therapy, doctorID uint) error {
	for _, ms := range t.Schedules {
		if err := record(ctx, tx, doctorID, entitySchedule, ms.ID, model.ChangeDelete, ms, nil); err != nil {
			return err
		}
	}
	if err := tx.DeleteTherapy(ctx, t.ID); err != nil {
		return err
	}
	return record(ctx, tx, doctorID, entityTherapy, t.ID, model.ChangeDelete, snapshotOf(t), nil)
}

// ensureHead rejects versions that already ended or were already replaced.
func ensureHead(ctx context.Context, tx repository.Repository, t *model.Therapy, today time.Time) error {
	if end := t.End(); end != nil && !end.After(today) {
		return fmt.Errorf("%w: therapy %d is already closed", apperr.Conflict, t.ID)
	}
	successor, err := tx.FindTherapySuccessor(ctx, t.ID)
	if err != nil {
		return err
	}
	if successor != nil {
		return fmt.Errorf("%w: therapy %d was replaced by therapy %d", apperr.Conflict, t.ID, successor.ID)
	}
	return nil
}

func relinkVersion(ctx context.Context, tx repository.Repository, t *model.Therapy, previousID *uint, doctorID uint) error {
	before := snapshotOf(t)
	if err := tx.RelinkTherapy(ctx, t.ID, previousID); err != nil {
		return err
	}
	t.PreviousTherapyID = previousID
	return record(ctx, tx, doctorID, entityTherapy, t.ID, model.ChangeUpdate, before, snapshotOf(t))
}
