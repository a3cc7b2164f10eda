package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// AllModels lists every table owned by the service, in dependency order.
func AllModels() []any {
	return []any{
		&Role{},
		&User{},
		&PatientDoctor{},
		&GlycemicMeasurement{},
		&AlertType{},
		&Alert{},
		&AlertRecipient{},
		&Therapy{},
		&MedicationSchedule{},
		&MedicationIntake{},
		&Symptom{},
		&ReportedCondition{},
		&ClinicalComorbidity{},
		&RiskFactor{},
		&PatientRiskFactor{},
		&ChangeLog{},
	}
}

// Migrate creates or updates all owned tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// AlertTypeCatalog is the static alert type table. Ids are stable.
var AlertTypeCatalog = []AlertType{
	{ID: 1, Label: LabelNoMeasurements, Description: "No measurements recorded"},
	{ID: 2, Label: LabelPartialMeasurements, Description: "Fewer measurements than prescribed"},
	{ID: 3, Label: LabelRepeatedPartialMeasurements, Description: "Partial measurements on consecutive days"},
	{ID: 4, Label: LabelMissedMedication, Description: "Medication intake missed"},
	{ID: 5, Label: LabelTherapyNotFollowed, Description: "Therapy not followed"},
	{ID: 6, Label: LabelSlightlyHighGlucose, Description: "Slightly high glycemia"},
	{ID: 7, Label: LabelHighGlucose, Description: "Moderately high glycemia"},
	{ID: 8, Label: LabelVeryHighGlucose, Description: "Severely high glycemia"},
	{ID: 9, Label: LabelCriticalGlucose, Description: "Critical glycemia"},
	{ID: 10, Label: LabelCriticalSymptom, Description: "Critical symptom reported"},
	{ID: 11, Label: LabelNewComorbidity, Description: "New comorbidity reported"},
	{ID: 12, Label: LabelNewCondition, Description: "New condition reported"},
}

func SeedAlertTypes(db *gorm.DB) error {
	for _, at := range AlertTypeCatalog {
		var existing AlertType
		err := db.Where("label = ?", at.Label).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&at).Error; err != nil {
			return fmt.Errorf("failed to seed alert type %s: %w", at.Label, err)
		}
	}
	return nil
}

// Seed populates the role and alert type catalogs.
func Seed(db *gorm.DB) error {
	if err := SeedRoles(db); err != nil {
		return err
	}
	return SeedAlertTypes(db)
}
