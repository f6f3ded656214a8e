package reconcile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	raffleUsecases "github.com/modorifa/rifas/internal/application/raffle/usecases"
)

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name     string
		result   *raffleUsecases.CheckConsistencyResult
		contains []string
	}{
		{
			name:     "consistent",
			result:   &raffleUsecases.CheckConsistencyResult{Checked: 3},
			contains: []string{"Checked raffles: 3", "All counters consistent."},
		},
		{
			name: "drifts",
			result: &raffleUsecases.CheckConsistencyResult{
				Checked: 2,
				Drifts: []raffleUsecases.CounterDrift{
					{RaffleID: 7, Cached: 10, Live: 12, Repaired: true},
					{RaffleID: 9, Cached: 4, Live: 3},
				},
			},
			contains: []string{
				"Drifted raffles: 2",
				"raffle 7: cached=10 live=12 (repaired)",
				"raffle 9: cached=4 live=3 (reported)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}
