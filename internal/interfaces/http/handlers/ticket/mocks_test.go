package ticket

import (
	"context"

	"github.com/modorifa/rifas/internal/application/ticket/usecases"
)

type mockQueryUC struct {
	fn func(q usecases.QueryTicketQuery) (*usecases.QueryTicketResult, error)
}

func (m *mockQueryUC) Execute(_ context.Context, q usecases.QueryTicketQuery) (*usecases.QueryTicketResult, error) {
	return m.fn(q)
}

type mockByBuyerUC struct {
	fn func(q usecases.QueryTicketsByBuyerQuery) (*usecases.QueryTicketsByBuyerResult, error)
}

func (m *mockByBuyerUC) Execute(_ context.Context, q usecases.QueryTicketsByBuyerQuery) (*usecases.QueryTicketsByBuyerResult, error) {
	return m.fn(q)
}

type mockListUC struct {
	fn func(q usecases.ListRaffleTicketsQuery) (*usecases.ListRaffleTicketsResult, error)
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListRaffleTicketsQuery) (*usecases.ListRaffleTicketsResult, error) {
	return m.fn(q)
}

type mockChangeUC struct {
	fn func(cmd usecases.ChangeTicketStateCommand) (*usecases.ChangeTicketStateResult, error)
}

func (m *mockChangeUC) Execute(_ context.Context, cmd usecases.ChangeTicketStateCommand) (*usecases.ChangeTicketStateResult, error) {
	return m.fn(cmd)
}
