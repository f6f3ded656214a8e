package raffle

import (
	"context"

	"github.com/modorifa/rifas/internal/application/raffle/usecases"
)

type mockCreateUC struct {
	fn func(cmd usecases.CreateRaffleCommand) (*usecases.CreateRaffleResult, error)
}

func (m *mockCreateUC) Execute(_ context.Context, cmd usecases.CreateRaffleCommand) (*usecases.CreateRaffleResult, error) {
	return m.fn(cmd)
}

type mockGrowUC struct {
	fn func(cmd usecases.GrowRaffleCapacityCommand) (*usecases.GrowRaffleCapacityResult, error)
}

func (m *mockGrowUC) Execute(_ context.Context, cmd usecases.GrowRaffleCapacityCommand) (*usecases.GrowRaffleCapacityResult, error) {
	return m.fn(cmd)
}

type mockManualSaleUC struct {
	fn func(cmd usecases.SetManualSaleCommand) (*usecases.SetManualSaleResult, error)
}

func (m *mockManualSaleUC) Execute(_ context.Context, cmd usecases.SetManualSaleCommand) (*usecases.SetManualSaleResult, error) {
	return m.fn(cmd)
}

type mockGetUC struct {
	fn func(q usecases.GetRaffleQuery) (*usecases.GetRaffleResult, error)
}

func (m *mockGetUC) Execute(_ context.Context, q usecases.GetRaffleQuery) (*usecases.GetRaffleResult, error) {
	return m.fn(q)
}

type mockListUC struct {
	fn func(q usecases.ListRafflesQuery) (*usecases.ListRafflesResult, error)
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListRafflesQuery) (*usecases.ListRafflesResult, error) {
	return m.fn(q)
}

type mockDeleteUC struct {
	fn func(cmd usecases.DeleteRaffleCommand) error
}

func (m *mockDeleteUC) Execute(_ context.Context, cmd usecases.DeleteRaffleCommand) error {
	return m.fn(cmd)
}

type mockDrawUC struct {
	fn func(cmd usecases.DrawRaffleCommand) (*usecases.DrawRaffleResult, error)
}

func (m *mockDrawUC) Execute(_ context.Context, cmd usecases.DrawRaffleCommand) (*usecases.DrawRaffleResult, error) {
	return m.fn(cmd)
}

type mockConsistencyUC struct {
	fn func(cmd usecases.CheckConsistencyCommand) (*usecases.CheckConsistencyResult, error)
}

func (m *mockConsistencyUC) Execute(_ context.Context, cmd usecases.CheckConsistencyCommand) (*usecases.CheckConsistencyResult, error) {
	return m.fn(cmd)
}
