package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname" envconfig:"APPNAME" default:"GlucoTrack API"`
	AppEnv  string `json:"appenv" envconfig:"APPENV" default:"development"`
	AppPort uint16 `json:"appport" envconfig:"APPPORT" default:"8080"`
	GinMode string `json:"ginmode" envconfig:"GINMODE" default:"debug"`
	LogMode string `json:"logmode" envconfig:"LOG_MODE" default:"development"`

	DBDriver string `json:"dbdriver" envconfig:"DBDRIVER" default:"mysql"`
	DBHost   string `json:"dbhost" envconfig:"DBHOST" default:"localhost"`
	DBPort   uint16 `json:"dbport" envconfig:"DBPORT" default:"3306"`
	DBName   string `json:"dbname" envconfig:"DBNAME" default:"glucotrack"`
	DBUSER   string `json:"dbuser" envconfig:"DBUSER"`
	DBPass   string `json:"dbpass" envconfig:"DBPASS"`

	RedisAddr string `json:"redisaddr" envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPass string `json:"redispass" envconfig:"REDIS_PASS"`
	RedisDB   int    `json:"redisdb" envconfig:"REDIS_DB" default:"0"`

	AlertTypeCacheTTL time.Duration `json:"alerttypecachettl" envconfig:"ALERT_TYPE_CACHE_TTL" default:"10m"`
	AlertRateLimit    int           `json:"alertratelimit" envconfig:"ALERT_RATE_LIMIT" default:"30"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from an optional .env file and
// returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env is fine; the process environment still applies.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		cfg := &Config{}
		if err := envconfig.Process("", cfg); err != nil {
			log.Fatalf("Error parsing environment: %v", err)
		}
		config = cfg
	})
	return config
}

// IsTest reports whether the application runs in the test environment.
func (c *Config) IsTest() bool {
	return strings.EqualFold(c.AppEnv, "test")
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() string {
	switch strings.ToLower(c.DBDriver) {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUSER, c.DBPass, c.DBName)
	case "sqlite":
		return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.DBName)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC", c.DBUSER, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	}
}

// ConnectDB opens a gorm connection for the configured driver. In the test
// environment an isolated in-memory sqlite database is used instead.
func ConnectDB() (*gorm.DB, error) {
	cfg := LoadConfig()

	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if cfg.IsTest() || strings.EqualFold(os.Getenv("APPENV"), "test") {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
		dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.DBDriver) {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	case "mysql", "":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}
