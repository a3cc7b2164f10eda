package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Fixed role identifiers. The catalog is seeded with these ids so code can
// refer to them without a lookup.
const (
	RoleAdmin   uint = 1
	RoleDoctor  uint = 2
	RolePatient uint = 3
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{ID: RoleAdmin, Name: "Admin"},
		{ID: RoleDoctor, Name: "Doctor"},
		{ID: RolePatient, Name: "Patient"},
	}

	for _, role := range roles {
		var existingRole Role
		err := db.Where("id = ?", role.ID).First(&existingRole).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
