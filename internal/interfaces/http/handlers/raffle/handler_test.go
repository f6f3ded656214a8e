package raffle

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/application/raffle/dto"
	"github.com/modorifa/rifas/internal/application/raffle/usecases"
	domainraffle "github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/testutil"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/textutil"
)

func newRaffle(t *testing.T, id uint) *domainraffle.Raffle {
	t.Helper()
	rf, err := domainraffle.NewRaffle(domainraffle.NewRaffleParams{
		ProductName:  "Moto",
		Description:  "**Yamaha** 2024",
		UnitPrice:    sharedvo.NewMoneyFromFloat(2, sharedvo.CurrencyUSD),
		ExchangeRate: 40,
		TotalTickets: 100,
	})
	require.NoError(t, err)
	rf.SetID(id)
	return rf
}

func newTestHandler(ucs UseCases) *Handler {
	return NewHandler(ucs, textutil.NewRenderer(), logger.NewNopLogger())
}

func TestCreateRaffle(t *testing.T) {
	var got usecases.CreateRaffleCommand
	h := newTestHandler(UseCases{Create: &mockCreateUC{fn: func(cmd usecases.CreateRaffleCommand) (*usecases.CreateRaffleResult, error) {
		got = cmd
		return &usecases.CreateRaffleResult{Raffle: newRaffle(t, 1)}, nil
	}}})

	t.Run("created", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles", map[string]any{
			"product_name":  "Moto",
			"description":   "**Yamaha** 2024",
			"unit_price":    2,
			"exchange_rate": 40,
			"total_tickets": 100,
		})
		testutil.SetAdminContext(c, "ops@rifas.test")

		h.CreateRaffle(c)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, 100, got.TotalTickets)
		assert.Equal(t, 2.0, got.UnitPrice)

		var out dto.RaffleDTO
		require.NoError(t, testutil.DecodeData(w, &out))
		assert.Equal(t, uint(1), out.ID)
		assert.Contains(t, out.DescriptionHTML, "<strong>Yamaha</strong>")
		assert.Equal(t, 80.0, out.UnitPriceVES)
	})

	t.Run("missing fields", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles", map[string]any{"unit_price": 2})

		h.CreateRaffle(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Details, "product_name is required")
		assert.Contains(t, resp.Error.Details, "total_tickets is required")
	})
}

func TestGetRaffle(t *testing.T) {
	drawnAt := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	h := newTestHandler(UseCases{Get: &mockGetUC{fn: func(q usecases.GetRaffleQuery) (*usecases.GetRaffleResult, error) {
		if q.RaffleID != 7 {
			return nil, errors.NewNotFoundError("raffle not found")
		}
		return &usecases.GetRaffleResult{
			Raffle: newRaffle(t, 7),
			Winners: []domainraffle.Winner{{
				Tier:         vo.TierFirst,
				Position:     1,
				TicketNumber: "042",
				Owner:        sharedvo.Buyer{Name: "Ana"},
				DrawnAt:      drawnAt,
			}},
		}, nil
	}}})

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"found", "7", http.StatusOK},
		{"missing", "8", http.StatusNotFound},
		{"bad id", "abc", http.StatusBadRequest},
		{"zero id", "0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodGet, "/api/raffles/"+tt.id, nil)
			testutil.SetURLParam(c, "id", tt.id)

			h.GetRaffle(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var out dto.RaffleDTO
				require.NoError(t, testutil.DecodeData(w, &out))
				require.Len(t, out.Winners, 1)
				assert.Equal(t, "042", out.Winners[0].TicketNumber)
				assert.Equal(t, "Ana", out.Winners[0].OwnerName)
			}
		})
	}
}

func TestListRaffles(t *testing.T) {
	var got usecases.ListRafflesQuery
	h := newTestHandler(UseCases{List: &mockListUC{fn: func(q usecases.ListRafflesQuery) (*usecases.ListRafflesResult, error) {
		got = q
		return &usecases.ListRafflesResult{
			Raffles:  []*domainraffle.Raffle{newRaffle(t, 1), newRaffle(t, 2)},
			Total:    12,
			Page:     q.Page,
			PageSize: q.PageSize,
		}, nil
	}}})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/raffles", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "active", "page": "2", "page_size": "5", "search": "moto"})

	h.ListRaffles(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "moto", got.Search)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.PageSize)

	var list testutil.ListData
	require.NoError(t, testutil.DecodeData(w, &list))
	assert.Equal(t, int64(12), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestGrowCapacity(t *testing.T) {
	h := newTestHandler(UseCases{Grow: &mockGrowUC{fn: func(cmd usecases.GrowRaffleCapacityCommand) (*usecases.GrowRaffleCapacityResult, error) {
		if cmd.TotalTickets < 100 {
			return nil, errors.NewValidationError("raffle capacity cannot shrink")
		}
		return &usecases.GrowRaffleCapacityResult{Raffle: newRaffle(t, cmd.RaffleID), Added: cmd.TotalTickets - 100}, nil
	}}})

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{"grow", map[string]any{"total_tickets": 150}, http.StatusOK},
		{"shrink", map[string]any{"total_tickets": 50}, http.StatusBadRequest},
		{"missing", map[string]any{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/3/capacity", tt.body)
			testutil.SetURLParam(c, "id", "3")

			h.GrowCapacity(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSetManualSale(t *testing.T) {
	var got usecases.SetManualSaleCommand
	h := newTestHandler(UseCases{ManualSale: &mockManualSaleUC{fn: func(cmd usecases.SetManualSaleCommand) (*usecases.SetManualSaleResult, error) {
		got = cmd
		return &usecases.SetManualSaleResult{Raffle: newRaffle(t, cmd.RaffleID)}, nil
	}}})

	t.Run("closes sale", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPatch, "/api/admin/raffles/4/manual-sale", map[string]any{"open": false})
		testutil.SetURLParam(c, "id", "4")

		h.SetManualSale(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(4), got.RaffleID)
		assert.False(t, got.Open)
	})

	t.Run("open flag required", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPatch, "/api/admin/raffles/4/manual-sale", map[string]any{})
		testutil.SetURLParam(c, "id", "4")

		h.SetManualSale(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteRaffle(t *testing.T) {
	h := newTestHandler(UseCases{Delete: &mockDeleteUC{fn: func(cmd usecases.DeleteRaffleCommand) error {
		if cmd.RaffleID == 2 {
			return errors.NewConflictError("raffle has open payments")
		}
		return nil
	}}})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/admin/raffles/1", nil)
	testutil.SetURLParam(c, "id", "1")
	h.DeleteRaffle(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())

	c, w = testutil.NewTestContext(http.MethodDelete, "/api/admin/raffles/2", nil)
	testutil.SetURLParam(c, "id", "2")
	h.DeleteRaffle(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDrawRaffle(t *testing.T) {
	var got usecases.DrawRaffleCommand
	h := newTestHandler(UseCases{Draw: &mockDrawUC{fn: func(cmd usecases.DrawRaffleCommand) (*usecases.DrawRaffleResult, error) {
		got = cmd
		if cmd.RaffleID == 9 {
			return nil, errors.NewAlreadyDrawnError("raffle already drawn")
		}
		return &usecases.DrawRaffleResult{
			Raffle:  newRaffle(t, cmd.RaffleID),
			Winners: []domainraffle.Winner{{Tier: vo.TierFirst, Position: 1, TicketNumber: "007"}},
		}, nil
	}}})

	t.Run("without body draws default tiers", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/1/draw", nil)
		testutil.SetURLParam(c, "id", "1")

		h.DrawRaffle(c)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, got.Tiers)
	})

	t.Run("with tiers", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/1/draw", map[string]any{
			"tiers": []map[string]any{{"tier": "first_place", "count": 1}, {"tier": "second_place", "count": 2}},
		})
		testutil.SetURLParam(c, "id", "1")

		h.DrawRaffle(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []usecases.DrawTier{{Tier: "first_place", Count: 1}, {Tier: "second_place", Count: 2}}, got.Tiers)
	})

	t.Run("invalid tier count", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/1/draw", map[string]any{
			"tiers": []map[string]any{{"tier": "first_place", "count": 0}},
		})
		testutil.SetURLParam(c, "id", "1")

		h.DrawRaffle(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already drawn", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/9/draw", nil)
		testutil.SetURLParam(c, "id", "9")

		h.DrawRaffle(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCheckConsistency(t *testing.T) {
	var got usecases.CheckConsistencyCommand
	h := newTestHandler(UseCases{Consistency: &mockConsistencyUC{fn: func(cmd usecases.CheckConsistencyCommand) (*usecases.CheckConsistencyResult, error) {
		got = cmd
		return &usecases.CheckConsistencyResult{
			Checked: 1,
			Drifts:  []usecases.CounterDrift{{RaffleID: 5, Cached: 10, Live: 8, Repaired: true}},
		}, nil
	}}})

	t.Run("repair one raffle", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/consistency", nil)
		testutil.SetQueryParams(c, map[string]string{"raffle_id": "5", "repair": "true"})

		h.CheckConsistency(c)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.RaffleID)
		assert.Equal(t, uint(5), *got.RaffleID)
		assert.True(t, got.Repair)

		var out ConsistencyResponse
		require.NoError(t, testutil.DecodeData(w, &out))
		require.Len(t, out.Drifts, 1)
		assert.Equal(t, 8, out.Drifts[0].Live)
	})

	t.Run("bad flag", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/raffles/consistency", nil)
		testutil.SetQueryParams(c, map[string]string{"repair": "maybe"})

		h.CheckConsistency(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
