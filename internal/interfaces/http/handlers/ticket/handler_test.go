package ticket

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/application/ticket/dto"
	"github.com/modorifa/rifas/internal/application/ticket/usecases"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	domainticket "github.com/modorifa/rifas/internal/domain/ticket"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/testutil"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

func paidTicket(t *testing.T, id uint, number string) *domainticket.Ticket {
	t.Helper()
	paymentID := uint(21)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	tk, err := domainticket.ReconstructTicket(id, 3, number, vo.StatePaid,
		&sharedvo.Buyer{Name: "Ana", Email: "ana.perez@example.com", Phone: "04141234567", IDType: sharedvo.IDTypeVenezuelan, IDNumber: "123"},
		&paymentID, &now, now, now)
	require.NoError(t, err)
	return tk
}

func TestQueryTicket(t *testing.T) {
	var got usecases.QueryTicketQuery
	h := NewHandler(&mockQueryUC{fn: func(q usecases.QueryTicketQuery) (*usecases.QueryTicketResult, error) {
		got = q
		if q.Number == "9999" {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return &usecases.QueryTicketResult{Ticket: paidTicket(t, 1, "0007")}, nil
	}}, nil, nil, nil, logger.NewNopLogger())

	tests := []struct {
		name       string
		number     string
		wantStatus int
	}{
		{"found", "7", http.StatusOK},
		{"not found", "9999", http.StatusNotFound},
		{"letters", "7a", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodGet, "/api/raffles/3/tickets/"+tt.number, nil)
			testutil.SetURLParam(c, "id", "3")
			testutil.SetURLParam(c, "number", tt.number)

			h.QueryTicket(c)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, usecases.QueryTicketQuery{RaffleID: 3, Number: "7"}, got)

			var out dto.TicketDTO
			require.NoError(t, testutil.DecodeData(w, &out))
			assert.Equal(t, "0007", out.Number)
			assert.Nil(t, out.PaymentID)
			require.NotNil(t, out.Owner)
			assert.NotEqual(t, "ana.perez@example.com", out.Owner.Email)
			assert.Empty(t, out.Owner.IDNumber)
		})
	}
}

func TestQueryByBuyer(t *testing.T) {
	var got usecases.QueryTicketsByBuyerQuery
	h := NewHandler(nil, &mockByBuyerUC{fn: func(q usecases.QueryTicketsByBuyerQuery) (*usecases.QueryTicketsByBuyerResult, error) {
		got = q
		if q.Email == "bad" {
			return nil, errors.NewValidationError("invalid email")
		}
		return &usecases.QueryTicketsByBuyerResult{Tickets: []*domainticket.Ticket{paidTicket(t, 1, "0007"), paidTicket(t, 2, "0042")}}, nil
	}}, nil, nil, logger.NewNopLogger())

	t.Run("by email and raffle", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets", nil)
		testutil.SetQueryParams(c, map[string]string{"email": "ana.perez@example.com", "raffle_id": "3"})

		h.QueryByBuyer(c)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.RaffleID)
		assert.Equal(t, uint(3), *got.RaffleID)

		var out []dto.TicketDTO
		require.NoError(t, testutil.DecodeData(w, &out))
		assert.Len(t, out, 2)
	})

	t.Run("invalid email", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets", nil)
		testutil.SetQueryParams(c, map[string]string{"email": "bad"})

		h.QueryByBuyer(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListRaffleTickets(t *testing.T) {
	var got usecases.ListRaffleTicketsQuery
	h := NewHandler(nil, nil, &mockListUC{fn: func(q usecases.ListRaffleTicketsQuery) (*usecases.ListRaffleTicketsResult, error) {
		got = q
		return &usecases.ListRaffleTicketsResult{
			Tickets:  []*domainticket.Ticket{paidTicket(t, 1, "0007")},
			Total:    1,
			Page:     q.Page,
			PageSize: q.PageSize,
		}, nil
	}}, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/raffles/3/tickets", nil)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetQueryParams(c, map[string]string{"state": "paid", "number": "00", "page_size": "50"})

	h.ListRaffleTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", got.State)
	assert.Equal(t, "00", got.Number)
	assert.Equal(t, 50, got.PageSize)

	var list testutil.ListData
	require.NoError(t, testutil.DecodeData(w, &list))
	var items []dto.TicketDTO
	require.NoError(t, json.Unmarshal(list.Items, &items))
	require.Len(t, items, 1)
	require.NotNil(t, items[0].PaymentID)
	assert.Equal(t, "ana.perez@example.com", items[0].Owner.Email)
}

func TestChangeTicketState(t *testing.T) {
	var got usecases.ChangeTicketStateCommand
	h := NewHandler(nil, nil, nil, &mockChangeUC{fn: func(cmd usecases.ChangeTicketStateCommand) (*usecases.ChangeTicketStateResult, error) {
		got = cmd
		if cmd.TicketID == 2 {
			return nil, errors.NewInvalidStateTransitionError("ticket is claimed")
		}
		tk, err := domainticket.NewTicket(3, "0001")
		require.NoError(t, err)
		require.NoError(t, tk.Void())
		return &usecases.ChangeTicketStateResult{Ticket: tk}, nil
	}}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/tickets/1/void", nil)
	testutil.SetURLParam(c, "id", "1")
	h.VoidTicket(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.TicketActionVoid, got.Action)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/admin/tickets/2/restore", nil)
	testutil.SetURLParam(c, "id", "2")
	h.RestoreTicket(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, usecases.TicketActionRestore, got.Action)
}
