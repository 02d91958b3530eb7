package ledger

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	carol = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	dave  = uuid.MustParse("00000000-0000-0000-0000-00000000000d")
)

func splitSum(splits []Split) int64 {
	var sum int64
	for _, s := range splits {
		sum += s.Amount
	}
	return sum
}

func TestAllocateEqual(t *testing.T) {
	splits, err := Allocate(100, SplitEqual, []uuid.UUID{alice, bob, carol}, nil)
	require.NoError(t, err)

	// First in list order absorbs the remainder.
	assert.Equal(t, []Split{
		{UserID: alice, Amount: 34},
		{UserID: bob, Amount: 33},
		{UserID: carol, Amount: 33},
	}, splits)
}

func TestAllocateEqualEmptyGroup(t *testing.T) {
	_, err := Allocate(100, SplitEqual, nil, nil)
	var emptyErr *EmptyGroupError
	require.ErrorAs(t, err, &emptyErr)
}

func TestAllocateExact(t *testing.T) {
	splits, err := Allocate(100, SplitExact, nil, []Share{
		{UserID: alice, Amount: 60},
		{UserID: bob, Amount: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60), splits[0].Amount)
	assert.Equal(t, int64(40), splits[1].Amount)
}

func TestAllocateExactMismatch(t *testing.T) {
	_, err := Allocate(100, SplitExact, nil, []Share{
		{UserID: alice, Amount: 40},
		{UserID: bob, Amount: 40},
	})

	var mismatch *SplitMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(80), mismatch.Got)
	assert.Equal(t, int64(100), mismatch.Want)
}

func TestAllocateExactNegative(t *testing.T) {
	_, err := Allocate(100, SplitExact, nil, []Share{
		{UserID: alice, Amount: 150},
		{UserID: bob, Amount: -50},
	})
	var invalidErr *InvalidSplitError
	require.ErrorAs(t, err, &invalidErr)
}

func TestAllocatePercentage(t *testing.T) {
	splits, err := Allocate(10000, SplitPercentage, nil, []Share{
		{UserID: alice, Percent: 33.33},
		{UserID: bob, Percent: 33.33},
		{UserID: carol, Percent: 33.34},
	})
	require.NoError(t, err)

	// round(10000*33.33/100) twice, last absorbs the rest.
	assert.Equal(t, int64(3333), splits[0].Amount)
	assert.Equal(t, int64(3333), splits[1].Amount)
	assert.Equal(t, int64(3334), splits[2].Amount)
	assert.Equal(t, int64(10000), splitSum(splits))
}

func TestAllocatePercentageLastAbsorbsRemainder(t *testing.T) {
	splits, err := Allocate(101, SplitPercentage, nil, []Share{
		{UserID: alice, Percent: 50},
		{UserID: bob, Percent: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(51), splits[0].Amount)
	assert.Equal(t, int64(50), splits[1].Amount)
}

func TestAllocatePercentageBadSum(t *testing.T) {
	_, err := Allocate(100, SplitPercentage, nil, []Share{
		{UserID: alice, Percent: 60},
		{UserID: bob, Percent: 50},
	})
	var mismatch *SplitMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(11000), mismatch.Got)
}

func TestAllocatePercentageWithinTolerance(t *testing.T) {
	splits, err := Allocate(300, SplitPercentage, nil, []Share{
		{UserID: alice, Percent: 33.333},
		{UserID: bob, Percent: 33.333},
		{UserID: carol, Percent: 33.333},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(300), splitSum(splits))
}

func TestAllocateShares(t *testing.T) {
	splits, err := Allocate(100, SplitShares, nil, []Share{
		{UserID: alice, Units: 2},
		{UserID: bob, Units: 1},
		{UserID: carol, Units: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), splits[0].Amount)
	assert.Equal(t, int64(25), splits[1].Amount)
	assert.Equal(t, int64(25), splits[2].Amount)
}

func TestAllocateSharesRemainder(t *testing.T) {
	splits, err := Allocate(100, SplitShares, nil, []Share{
		{UserID: alice, Units: 1},
		{UserID: bob, Units: 1},
		{UserID: carol, Units: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), splitSum(splits))
	// Last in specification order absorbs the remainder.
	assert.Equal(t, int64(34), splits[2].Amount)
}

func TestAllocateSharesZeroTotal(t *testing.T) {
	_, err := Allocate(100, SplitShares, nil, []Share{
		{UserID: alice, Units: 0},
		{UserID: bob, Units: 0},
	})
	var invalidErr *InvalidSplitError
	require.ErrorAs(t, err, &invalidErr)
}

func TestAllocateUnknownType(t *testing.T) {
	_, err := Allocate(100, "random", []uuid.UUID{alice}, nil)
	var invalidErr *InvalidSplitError
	require.ErrorAs(t, err, &invalidErr)
}

func TestAllocateNegativeTotal(t *testing.T) {
	_, err := Allocate(-100, SplitEqual, []uuid.UUID{alice, bob}, nil)
	var invalidErr *InvalidSplitError
	require.ErrorAs(t, err, &invalidErr)
}

// Any valid percentage spec must allocate the total exactly, whatever the
// rounding does to the individual amounts.
func TestAllocatePercentageSumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		n := 2 + rng.Intn(8)
		shares := make([]Share, n)

		remaining := 100.0
		for j := 0; j < n-1; j++ {
			pct := float64(rng.Intn(int(remaining*100)+1)) / 100
			shares[j] = Share{UserID: uuid.New(), Percent: pct}
			remaining -= pct
		}
		shares[n-1] = Share{UserID: uuid.New(), Percent: remaining}

		total := rng.Int63n(1_000_000)
		splits, err := Allocate(total, SplitPercentage, nil, shares)
		if err != nil {
			// Extreme skews can round a non-last participant above the
			// total, pushing the last one negative; that rejection is the
			// documented behavior, not a failed allocation.
			var invalidErr *InvalidSplitError
			require.ErrorAs(t, err, &invalidErr)
			continue
		}
		require.Equal(t, total, splitSum(splits), "n=%d total=%d", n, total)
	}
}
