package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack-api/model"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "seed"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	flag := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, flag)
	assert.Equal(t, "true", flag.DefValue)
}

func TestBootstrapInTestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")

	cfg, log, db, err := bootstrap()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.NotNil(t, log)
	require.NoError(t, model.Migrate(db))
	require.NoError(t, model.Seed(db))

	var count int64
	require.NoError(t, db.Model(&model.AlertType{}).Count(&count).Error)
	assert.Equal(t, int64(len(model.AlertTypeCatalog)), count)
}
