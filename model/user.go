package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email          string          `gorm:"type:varchar(255)" json:"email"`
	FirstName      string          `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string          `gorm:"type:varchar(100)" json:"last_name"`
	RoleID         uint            `gorm:"not null;index" json:"role_id"`
	BirthDate      *datatypes.Date `json:"birth_date,omitempty"`
	Gender         string          `gorm:"type:varchar(16)" json:"gender,omitempty"`
	Height         *float64        `json:"height,omitempty"`
	Weight         *float64        `json:"weight,omitempty"`
	Specialization string          `gorm:"type:varchar(100)" json:"specialization,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PatientDoctor assigns a doctor to a patient over a date window. A nil
// EndDate means the assignment is open.
type PatientDoctor struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	PatientID uint            `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint            `gorm:"not null;index" json:"doctor_id"`
	StartDate datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate   *datatypes.Date `json:"end_date,omitempty"`
}

// CurrentOn reports whether the assignment is still in force on day: it has
// no end date or ends strictly after day.
func (pd PatientDoctor) CurrentOn(day time.Time) bool {
	if pd.EndDate == nil {
		return true
	}
	return dateOf(*pd.EndDate).After(dateOf(datatypes.Date(day)))
}

func dateOf(d datatypes.Date) time.Time {
	y, m, dd := time.Time(d).Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
