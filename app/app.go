// Package app assembles the services behind the HTTP API.
package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/analytics"
	"github.com/glucotrack/glucotrack-api/clinical"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/config"
	"github.com/glucotrack/glucotrack-api/dashboard"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/notify"
	"github.com/glucotrack/glucotrack-api/patientlog"
	"github.com/glucotrack/glucotrack-api/repository"
	"github.com/glucotrack/glucotrack-api/therapy"
)

// Services is the set of domain services handlers call into.
type Services struct {
	Repo      repository.Repository
	Alerts    *alert.Factory
	Inbox     *alert.Inbox
	Dashboard *dashboard.Service
	Analytics *analytics.Service
	Therapies *therapy.Service
	Logs      *patientlog.Service
	Clinical  *clinical.Service
	Log       *logger.Logger
}

// Deps are the process-wide resources the services are built from.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Log    *logger.Logger
	Clock  clock.Clock
}

// New wires every service onto one repository. A nil Redis client disables
// alert notifications.
func New(d Deps) *Services {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	c := d.Clock
	if c == nil {
		c = clock.System()
	}

	repo := repository.New(d.DB, log)
	opts := []alert.Option{alert.WithClock(c)}
	if d.Redis != nil {
		opts = append(opts, alert.WithNotifier(notify.NewRedisNotifier(d.Redis, log)))
	}
	if d.Config != nil {
		opts = append(opts, alert.WithTypeCacheTTL(d.Config.AlertTypeCacheTTL))
	}
	factory := alert.NewFactory(repo, log, opts...)

	return &Services{
		Repo:      repo,
		Alerts:    factory,
		Inbox:     alert.NewInbox(repo, c),
		Dashboard: dashboard.NewService(repo, c, log),
		Analytics: analytics.NewService(repo, c, log),
		Therapies: therapy.NewService(repo, c, log),
		Logs:      patientlog.NewService(repo, factory, c, log),
		Clinical:  clinical.NewService(repo, log),
		Log:       log,
	}
}
