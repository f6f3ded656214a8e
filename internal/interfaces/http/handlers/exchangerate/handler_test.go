package exchangerate

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/application/exchangerate/usecases"
	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/testutil"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type mockRecordUC struct {
	fn func(cmd usecases.RecordExchangeRateCommand) (*usecases.RecordExchangeRateResult, error)
}

func (m *mockRecordUC) Execute(_ context.Context, cmd usecases.RecordExchangeRateCommand) (*usecases.RecordExchangeRateResult, error) {
	return m.fn(cmd)
}

type mockLatestUC struct {
	fn func(q usecases.GetLatestExchangeRateQuery) (*usecases.GetLatestExchangeRateResult, error)
}

func (m *mockLatestUC) Execute(_ context.Context, q usecases.GetLatestExchangeRateQuery) (*usecases.GetLatestExchangeRateResult, error) {
	return m.fn(q)
}

var recordedAt = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func TestRecordRate(t *testing.T) {
	var got usecases.RecordExchangeRateCommand
	h := NewHandler(&mockRecordUC{fn: func(cmd usecases.RecordExchangeRateCommand) (*usecases.RecordExchangeRateResult, error) {
		got = cmd
		return &usecases.RecordExchangeRateResult{
			Rate: exchangerate.ReconstructExchangeRate(4, cmd.Value, cmd.Source, recordedAt),
		}, nil
	}}, nil, logger.NewNopLogger())

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"valid", map[string]interface{}{"value": 36.5, "source": "BCV"}, http.StatusCreated},
		{"zero", map[string]interface{}{"value": 0}, http.StatusBadRequest},
		{"negative", map[string]interface{}{"value": -1.5}, http.StatusBadRequest},
		{"missing", map[string]interface{}{"source": "BCV"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/exchange-rates", tt.body)
			testutil.SetAdminContext(c, "ops@example.com")

			h.RecordRate(c)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusCreated {
				return
			}
			assert.Equal(t, 36.5, got.Value)

			var out RateResponse
			require.NoError(t, testutil.DecodeData(w, &out))
			assert.Equal(t, uint(4), out.ID)
			assert.Equal(t, "BCV", out.Source)
		})
	}
}

func TestGetLatestRate(t *testing.T) {
	var got usecases.GetLatestExchangeRateQuery
	empty := false
	h := NewHandler(nil, &mockLatestUC{fn: func(q usecases.GetLatestExchangeRateQuery) (*usecases.GetLatestExchangeRateResult, error) {
		got = q
		if empty {
			return nil, errors.NewNotFoundError("no exchange rate recorded")
		}
		latest := exchangerate.ReconstructExchangeRate(2, 37, "BCV", recordedAt)
		result := &usecases.GetLatestExchangeRateResult{Latest: latest}
		if q.HistoryLimit > 0 {
			result.History = []*exchangerate.ExchangeRate{
				latest,
				exchangerate.ReconstructExchangeRate(1, 36, "BCV", recordedAt.Add(-24*time.Hour)),
			}
		}
		return result, nil
	}}, logger.NewNopLogger())

	t.Run("public latest", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/exchange-rate", nil)
		h.GetLatestRate(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, got.HistoryLimit)

		var out LatestRateResponse
		require.NoError(t, testutil.DecodeData(w, &out))
		require.NotNil(t, out.RateResponse)
		assert.Equal(t, 37.0, out.Value)
		assert.Empty(t, out.History)
	})

	t.Run("admin history", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/exchange-rates", nil)
		testutil.SetQueryParams(c, map[string]string{"limit": "5"})
		h.GetRateHistory(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, got.HistoryLimit)

		var out LatestRateResponse
		require.NoError(t, testutil.DecodeData(w, &out))
		assert.Len(t, out.History, 2)
	})

	t.Run("bad limit", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/exchange-rates", nil)
		testutil.SetQueryParams(c, map[string]string{"limit": "500"})
		h.GetRateHistory(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("none recorded", func(t *testing.T) {
		empty = true
		c, w := testutil.NewTestContext(http.MethodGet, "/api/exchange-rate", nil)
		h.GetLatestRate(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
