package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/domain/raffle"
	rafflevo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
)

func TestExchangeRateRepository_Latest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExchangeRateRepository(db)
	ctx := context.Background()

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	for _, v := range []float64{36.1, 36.4} {
		rate, err := exchangerate.NewExchangeRate(v, "bcv")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, rate))
	}

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 36.4, latest.Value())

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWinnerRepository_SaveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWinnerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, nil))
	require.NoError(t, repo.SaveAll(ctx, []raffle.Winner{
		{RaffleID: 1, Tier: rafflevo.TierFirst, Position: 1, TicketID: 4, TicketNumber: "04", Owner: testBuyer()},
		{RaffleID: 1, Tier: rafflevo.TierSecond, Position: 1, TicketID: 9, TicketNumber: "09", Owner: testBuyer()},
	}))

	winners, err := repo.ListByRaffle(ctx, 1)
	require.NoError(t, err)
	require.Len(t, winners, 2)
	assert.Equal(t, "04", winners[0].TicketNumber)
	assert.Equal(t, "ana@example.com", winners[1].Owner.Email)

	require.NoError(t, repo.DeleteByRaffle(ctx, 1))
	winners, err = repo.ListByRaffle(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, winners)
}
