package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	ChangeInsert     = "Insert"
	ChangeUpdate     = "Update"
	ChangeSoftDelete = "SoftDelete"
	ChangeDelete     = "Delete"
)

// ChangeLog is an audit row describing one mutation made by a doctor.
type ChangeLog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	DoctorID      uint           `gorm:"not null;index" json:"doctor_id"`
	Entity        string         `gorm:"type:varchar(64);not null;index:idx_changelog_record,priority:1" json:"entity"`
	RecordID      uint           `gorm:"not null;index:idx_changelog_record,priority:2" json:"record_id"`
	Action        string         `gorm:"type:varchar(16);not null" json:"action"`
	Timestamp     time.Time      `gorm:"not null" json:"timestamp"`
	DetailsBefore datatypes.JSON `json:"details_before,omitempty"`
	DetailsAfter  datatypes.JSON `json:"details_after,omitempty"`
}

// Snapshot marshals v into a JSON column value. A nil v yields a nil column.
func Snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// NewChangeLog builds an audit row from before and after values, either of
// which may be nil.
func NewChangeLog(doctorID uint, entity string, recordID uint, action string, before, after any) (*ChangeLog, error) {
	entry := &ChangeLog{DoctorID: doctorID, Entity: entity, RecordID: recordID, Action: action}
	var err error
	if entry.DetailsBefore, err = Snapshot(before); err != nil {
		return nil, err
	}
	if entry.DetailsAfter, err = Snapshot(after); err != nil {
		return nil, err
	}
	return entry, nil
}
