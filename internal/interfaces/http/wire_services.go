package http

import (
	"fmt"

	"github.com/modorifa/rifas/internal/application/notification"
	"github.com/modorifa/rifas/internal/application/payment/proofstore"
	"github.com/modorifa/rifas/internal/infrastructure/auth"
	"github.com/modorifa/rifas/internal/infrastructure/email"
	"github.com/modorifa/rifas/internal/infrastructure/pubsub"
	"github.com/modorifa/rifas/internal/infrastructure/ratelimit"
	"github.com/modorifa/rifas/internal/infrastructure/services"
	"github.com/modorifa/rifas/internal/infrastructure/storage"
	"github.com/modorifa/rifas/internal/infrastructure/telegram"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/keylock"
	"github.com/modorifa/rifas/internal/shared/textutil"
)

// infraServices holds infrastructure adapters shared by several use cases.
type infraServices struct {
	proofs         proofstore.Store
	localProofs    *storage.LocalStore
	paymentNos     *services.SnowflakePaymentNumberGenerator
	hasher         *auth.BcryptPasswordHasher
	renderer       textutil.Renderer
	limiter        ratelimit.RateLimiter
	closePublisher func() error
}

func (c *Container) initServices() error {
	infra := &infraServices{}
	c.infra = infra

	publisher, closePublisher, err := pubsub.NewPublisher(c.cfg.Events, c.redis, c.log.Named("events"))
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	infra.closePublisher = closePublisher

	infra.proofs, err = storage.New(c.cfg.Storage, c.cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create proof store: %w", err)
	}
	if local, ok := infra.proofs.(*storage.LocalStore); ok {
		infra.localProofs = local
	}

	infra.paymentNos, err = services.NewSnowflakePaymentNumberGenerator(c.cfg.Server.NodeID)
	if err != nil {
		return fmt.Errorf("failed to create payment number generator: %w", err)
	}

	// Nil interfaces switch a notification channel off.
	var mailer notification.Mailer
	if c.cfg.Email.Enabled() {
		mailer = email.NewSMTPMailer(c.cfg.Email, c.cfg.Server.BaseURL)
	}
	var alerter notification.AdminAlerter
	if c.cfg.Telegram.Enabled() {
		tg, err := telegram.NewAdminAlerter(c.cfg.Telegram, c.cfg.Server.BaseURL, c.log.Named("telegram"))
		if err != nil {
			c.log.Warnw("telegram admin alerts disabled", "error", err)
		} else {
			alerter = tg
		}
	}
	c.notifier = notification.NewService(publisher, mailer, alerter, c.log.Named("notification"))

	if c.cfg.RateLimit.Enabled && c.redis != nil {
		infra.limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}

	infra.hasher = auth.NewBcryptPasswordHasher(0)
	infra.renderer = textutil.NewRenderer()
	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	c.txManager = db.NewTransactionManager(c.db)
	c.locks = keylock.New()
	return nil
}
