package services

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakePaymentNumberGenerator(t *testing.T) {
	gen, err := NewSnowflakePaymentNumberGenerator(1)
	require.NoError(t, err)

	no := gen.Generate("RF")
	assert.True(t, strings.HasPrefix(no, "RF"))
	assert.Equal(t, strings.ToUpper(no), no)
	assert.LessOrEqual(t, len(no), 20)
}

func TestSnowflakePaymentNumberGenerator_UniqueUnderConcurrency(t *testing.T) {
	gen, err := NewSnowflakePaymentNumberGenerator(2)
	require.NoError(t, err)

	const workers, perWorker = 8, 500
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				no := gen.Generate("RF")
				mu.Lock()
				seen[no] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestSnowflakePaymentNumberGenerator_InvalidNode(t *testing.T) {
	_, err := NewSnowflakePaymentNumberGenerator(5000)
	assert.Error(t, err)
}
