package admin

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/application/admin/usecases"
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/testutil"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type mockLoginUC struct {
	fn func(cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	return m.fn(cmd)
}

type dirOpener struct {
	dir string
}

func (d dirOpener) Open(key string) (*os.File, error) {
	return os.Open(filepath.Join(d.dir, filepath.FromSlash(key)))
}

func TestLogin(t *testing.T) {
	h := NewHandler(&mockLoginUC{fn: func(cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
		if cmd.Password != "s3cret" {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		return &usecases.LoginResult{Email: cmd.Email, AccessToken: "tok", ExpiresIn: 3600}, nil
	}}, nil, logger.NewNopLogger())

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{"ok", map[string]string{"email": "ops@example.com", "password": "s3cret"}, http.StatusOK},
		{"wrong password", map[string]string{"email": "ops@example.com", "password": "nope"}, http.StatusUnauthorized},
		{"bad email", map[string]string{"email": "ops", "password": "s3cret"}, http.StatusBadRequest},
		{"missing password", map[string]string{"email": "ops@example.com"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/login", tt.body)

			h.Login(c)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			var out LoginResponse
			require.NoError(t, testutil.DecodeData(w, &out))
			assert.Equal(t, "tok", out.AccessToken)
			assert.Equal(t, "Bearer", out.TokenType)
			assert.Equal(t, int64(3600), out.ExpiresIn)
		})
	}
}

func TestDownloadProof(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "proofs", "2026", "10"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proofs", "2026", "10", "a.txt"), []byte("receipt"), 0o640))

	h := NewHandler(nil, dirOpener{dir: dir}, logger.NewNopLogger())

	t.Run("found", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/proofs/2026/10/a.txt", nil)
		testutil.SetURLParam(c, "path", "/2026/10/a.txt")

		h.DownloadProof(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "receipt", w.Body.String())
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("missing", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/proofs/2026/10/b.txt", nil)
		testutil.SetURLParam(c, "path", "/2026/10/b.txt")

		h.DownloadProof(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("directory", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/proofs/2026", nil)
		testutil.SetURLParam(c, "path", "/2026")

		h.DownloadProof(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no local store", func(t *testing.T) {
		h := NewHandler(nil, nil, logger.NewNopLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/proofs/2026/10/a.txt", nil)
		testutil.SetURLParam(c, "path", "/2026/10/a.txt")

		h.DownloadProof(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
