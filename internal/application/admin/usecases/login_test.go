package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/shared/config"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type mockVerifier struct {
	VerifyFunc func(password, hash string) error
}

func (m *mockVerifier) Verify(password, hash string) error {
	return m.VerifyFunc(password, hash)
}

type mockIssuer struct {
	GenerateFunc func(subject string) (string, int64, error)
}

func (m *mockIssuer) Generate(subject string) (string, int64, error) {
	return m.GenerateFunc(subject)
}

func plainVerifier() *mockVerifier {
	return &mockVerifier{VerifyFunc: func(password, hash string) error {
		if "hash:"+password != hash {
			return fmt.Errorf("mismatch")
		}
		return nil
	}}
}

func TestLoginUseCase(t *testing.T) {
	admins := []config.AdminAccount{{Email: "Ops@Rifas.test", PasswordHash: "hash:secret"}}
	issuer := &mockIssuer{GenerateFunc: func(subject string) (string, int64, error) {
		return "token-for-" + subject, 3600, nil
	}}
	uc := NewLoginUseCase(admins, plainVerifier(), issuer, logger.NewNopLogger())

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  func(error) bool
	}{
		{"valid credentials", " ops@rifas.test ", "secret", nil},
		{"wrong password", "ops@rifas.test", "nope", errors.IsUnauthorizedError},
		{"unknown admin", "root@rifas.test", "secret", errors.IsUnauthorizedError},
		{"missing password", "ops@rifas.test", "", errors.IsValidationError},
		{"missing email", "", "secret", errors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := uc.Execute(context.Background(), LoginCommand{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ops@rifas.test", res.Email)
			assert.Equal(t, "token-for-ops@rifas.test", res.AccessToken)
			assert.EqualValues(t, 3600, res.ExpiresIn)
		})
	}
}

func TestLoginUseCase_IssuerFailure(t *testing.T) {
	admins := []config.AdminAccount{{Email: "ops@rifas.test", PasswordHash: "hash:secret"}}
	issuer := &mockIssuer{GenerateFunc: func(subject string) (string, int64, error) {
		return "", 0, fmt.Errorf("no key")
	}}
	uc := NewLoginUseCase(admins, plainVerifier(), issuer, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), LoginCommand{Email: "ops@rifas.test", Password: "secret"})
	require.Error(t, err)
	assert.False(t, errors.IsUnauthorizedError(err))
}
