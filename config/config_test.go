package config

import (
	"strings"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// Test that LoadConfig returns a non-nil config and ConnectDB falls back to sqlite under APPENV=test
func TestLoadConfigAndConnectDB_TestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")

	cfg := LoadConfig()
	if cfg == nil {
		t.Fatalf("expected non-nil config")
	}

	db, err := ConnectDB()
	if err != nil {
		t.Fatalf("ConnectDB failed in test env: %v", err)
	}
	if db == nil {
		t.Fatalf("expected non-nil DB connection")
	}

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		contains []string
	}{
		{
			name:     "mysql",
			cfg:      Config{DBDriver: "mysql", DBUSER: "root", DBPass: "pw", DBHost: "db", DBPort: 3306, DBName: "gluco"},
			contains: []string{"root:pw@tcp(db:3306)/gluco", "parseTime=true"},
		},
		{
			name:     "postgres",
			cfg:      Config{DBDriver: "postgres", DBUSER: "pg", DBPass: "pw", DBHost: "db", DBPort: 5432, DBName: "gluco"},
			contains: []string{"host=db", "port=5432", "user=pg", "dbname=gluco", "sslmode=disable"},
		},
		{
			name:     "sqlite",
			cfg:      Config{DBDriver: "sqlite", DBName: "gluco"},
			contains: []string{"file:gluco", "mode=memory"},
		},
		{
			name:     "default driver is mysql",
			cfg:      Config{DBUSER: "u", DBPass: "p", DBHost: "h", DBPort: 1, DBName: "n"},
			contains: []string{"u:p@tcp(h:1)/n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.cfg.DSN()
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(dsn, want), "dsn %q missing %q", dsn, want)
			}
		})
	}
}

func TestConfig_IsTest(t *testing.T) {
	assert.True(t, (&Config{AppEnv: "test"}).IsTest())
	assert.True(t, (&Config{AppEnv: "TEST"}).IsTest())
	assert.False(t, (&Config{AppEnv: "production"}).IsTest())
}

func TestConnectRedis_SkippedInTestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")
	ResetRedisClientForTest()
	defer ResetRedisClientForTest()

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestSetRedisClientForTesting(t *testing.T) {
	original := GetRedisClient()
	defer SetRedisClientForTesting(original)

	client, _ := redismock.NewClientMock()
	SetRedisClientForTesting(client)
	assert.Equal(t, client, GetRedisClient())

	ResetRedisClientForTest()
	assert.Nil(t, GetRedisClient())
}

func TestCloseRedis(t *testing.T) {
	defer ResetRedisClientForTest()
	assert.NoError(t, CloseRedis())

	client, _ := redismock.NewClientMock()
	SetRedisClientForTesting(client)
	assert.NoError(t, CloseRedis())
	assert.Nil(t, GetRedisClient())
}
