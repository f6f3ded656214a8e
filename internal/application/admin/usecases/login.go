package usecases

import (
	"context"
	"strings"

	"github.com/modorifa/rifas/internal/shared/config"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type PasswordVerifier interface {
	Verify(password, hash string) error
}

type TokenIssuer interface {
	Generate(subject string) (token string, expiresIn int64, err error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Email       string
	AccessToken string
	ExpiresIn   int64
}

// LoginUseCase authenticates back-office operators against the accounts
// listed in configuration.
type LoginUseCase struct {
	admins map[string]string
	hasher PasswordVerifier
	tokens TokenIssuer
	logger logger.Interface
}

func NewLoginUseCase(admins []config.AdminAccount, hasher PasswordVerifier, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	byEmail := make(map[string]string, len(admins))
	for _, a := range admins {
		byEmail[normalizeEmail(a.Email)] = a.PasswordHash
	}
	return &LoginUseCase{
		admins: byEmail,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := normalizeEmail(cmd.Email)
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	hash, ok := uc.admins[email]
	if !ok || uc.hasher.Verify(cmd.Password, hash) != nil {
		uc.logger.Warnw("admin login failed", "email", email)
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	token, expiresIn, err := uc.tokens.Generate(email)
	if err != nil {
		uc.logger.Errorw("failed to issue admin token", "email", email, "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	uc.logger.Infow("admin logged in", "email", email)
	return &LoginResult{
		Email:       email,
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
