package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		n     int
		want  []int64
	}{
		{"even division", 90, 3, []int64{30, 30, 30}},
		{"remainder to first", 100, 3, []int64{34, 33, 33}},
		{"two units of remainder", 101, 3, []int64{34, 34, 33}},
		{"single participant", 55, 1, []int64{55}},
		{"zero total", 0, 4, []int64{0, 0, 0, 0}},
		{"total smaller than group", 2, 5, []int64{1, 1, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := distribute(tt.total, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parts)
		})
	}
}

func TestDistributeEmptyGroup(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := distribute(100, n)
		var emptyErr *EmptyGroupError
		require.ErrorAs(t, err, &emptyErr)
	}
}

func TestDistributeNegativeTotal(t *testing.T) {
	_, err := distribute(-1, 3)
	var invalidErr *InvalidSplitError
	require.ErrorAs(t, err, &invalidErr)
}

// For any total >= 0 and n > 0, the parts sum to total exactly and differ by
// at most one unit.
func TestDistributeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		total := rng.Int63n(1_000_000)
		n := 1 + rng.Intn(50)

		parts, err := distribute(total, n)
		require.NoError(t, err)
		require.Len(t, parts, n)

		var sum, min, max int64
		min, max = parts[0], parts[0]
		for _, p := range parts {
			sum += p
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		assert.LessOrEqual(t, max-min, int64(1), "total=%d n=%d", total, n)
	}
}
