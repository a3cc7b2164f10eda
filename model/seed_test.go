package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRolesCreatesRoles(t *testing.T) {
	db := setupTestDB(t, "roles", &Role{})

	require.NoError(t, SeedRoles(db))
	// Seeding twice must not duplicate rows.
	require.NoError(t, SeedRoles(db))

	var roles []Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	assert.Len(t, roles, 3)
	assert.Equal(t, RoleDoctor, roles[1].ID)
	assert.Equal(t, "Doctor", roles[1].Name)
}

func TestSeedAlertTypes(t *testing.T) {
	db := setupTestDB(t, "alert_types", &AlertType{})

	require.NoError(t, SeedAlertTypes(db))
	require.NoError(t, SeedAlertTypes(db))

	var count int64
	require.NoError(t, db.Model(&AlertType{}).Count(&count).Error)
	assert.EqualValues(t, len(AlertTypeCatalog), count)

	var critical AlertType
	require.NoError(t, db.Where("label = ?", LabelCriticalGlucose).First(&critical).Error)
	assert.EqualValues(t, 9, critical.ID)
}

func TestMigrateAndSeed(t *testing.T) {
	db := setupTestDB(t, "migrate", &Role{})
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))

	for _, m := range AllModels() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}
