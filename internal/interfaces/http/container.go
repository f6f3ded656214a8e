package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/modorifa/rifas/internal/application/notification"
	"github.com/modorifa/rifas/internal/infrastructure/auth"
	"github.com/modorifa/rifas/internal/infrastructure/config"
	"github.com/modorifa/rifas/internal/infrastructure/scheduler"
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/health"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/keylock"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers, and wires them together. Shutdown releases background resources.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	txManager db.Transactor
	locks     *keylock.Locker
	jwtSvc    *auth.JWTService
	notifier  *notification.Service

	repos *repositories
	infra *infraServices
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
	submitLimiter  *middleware.RateLimiter
	loginLimiter   *middleware.RateLimiter

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires the application. redisClient may be nil when neither
// rate limiting nor the redis event bus is enabled.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	if err := c.initServices(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initRepositories()
	c.initUseCases()
	c.initHandlers()
	c.initMiddlewares()
	if err := c.initScheduler(); err != nil {
		c.Shutdown()
		return nil, err
	}
	return c, nil
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		return nil
	}
	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterConsistencyJob(c.ucs.checkConsistency, c.cfg.Scheduler.ConsistencyInterval); err != nil {
		_ = manager.Stop()
		return fmt.Errorf("failed to register consistency job: %w", err)
	}
	c.schedulerManager = manager
	return nil
}

// StartBackground starts scheduled jobs.
func (c *Container) StartBackground() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background jobs and closes driver resources. Safe to call
// on a partially built container.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if c.infra != nil && c.infra.closePublisher != nil {
		if err := c.infra.closePublisher(); err != nil {
			c.log.Warnw("failed to close event publisher", "error", err)
		}
	}
}

// Engine returns the gin engine after SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

func (c *Container) healthChecks() map[string]health.Check {
	checks := map[string]health.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}
