package ledger

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifySingleCreditor(t *testing.T) {
	balances := map[uuid.UUID]int64{
		alice: 50,
		bob:   -20,
		carol: -30,
	}

	suggestions, err := Simplify(balances)
	require.NoError(t, err)

	// Largest debtor first.
	assert.Equal(t, []Suggestion{
		{From: carol, To: alice, Amount: 30},
		{From: bob, To: alice, Amount: 20},
	}, suggestions)
	assert.True(t, Validate(balances, suggestions))
}

func TestSimplifySingleDebtor(t *testing.T) {
	balances := map[uuid.UUID]int64{
		alice: 50,
		bob:   30,
		carol: -80,
	}

	suggestions, err := Simplify(balances)
	require.NoError(t, err)

	assert.Equal(t, []Suggestion{
		{From: carol, To: alice, Amount: 50},
		{From: carol, To: bob, Amount: 30},
	}, suggestions)
	assert.True(t, Validate(balances, suggestions))
}

func TestSimplifyIgnoresZeroBalances(t *testing.T) {
	suggestions, err := Simplify(map[uuid.UUID]int64{
		alice: 10,
		bob:   -10,
		carol: 0,
		dave:  0,
	})
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, Suggestion{From: bob, To: alice, Amount: 10}, suggestions[0])
}

func TestSimplifyAllSettled(t *testing.T) {
	suggestions, err := Simplify(map[uuid.UUID]int64{alice: 0, bob: 0})
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSimplifyEqualAmountsTieBreakByID(t *testing.T) {
	// bob and carol owe the same amount; the lower ID settles first.
	balances := map[uuid.UUID]int64{
		alice: 40,
		bob:   -20,
		carol: -20,
	}

	suggestions, err := Simplify(balances)
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, bob, suggestions[0].From)
	assert.Equal(t, carol, suggestions[1].From)
}

func TestSimplifyDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 100; i++ {
		balances := randomZeroSumBalances(rng, 2+rng.Intn(10))

		first, err := Simplify(balances)
		require.NoError(t, err)
		second, err := Simplify(balances)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestSimplifyConservationViolation(t *testing.T) {
	_, err := Simplify(map[uuid.UUID]int64{
		alice: 50,
		bob:   -20,
	})

	var conservation *ConservationViolationError
	require.ErrorAs(t, err, &conservation)
}

// For any zero-sum balance map, applying the suggestions zeroes every
// balance, all amounts are positive, and nobody pays themselves.
func TestSimplifyValidatesAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 500; i++ {
		balances := randomZeroSumBalances(rng, 2+rng.Intn(20))

		suggestions, err := Simplify(balances)
		require.NoError(t, err)

		for _, s := range suggestions {
			assert.Greater(t, s.Amount, int64(0))
			assert.NotEqual(t, s.From, s.To)
		}
		assert.True(t, Validate(balances, suggestions))

		// Never more transfers than non-zero participants minus one.
		var nonZero int
		for _, amount := range balances {
			if amount != 0 {
				nonZero++
			}
		}
		if nonZero > 0 {
			assert.LessOrEqual(t, len(suggestions), nonZero-1)
		}
	}
}

func TestValidateRejectsShortfall(t *testing.T) {
	balances := map[uuid.UUID]int64{
		alice: 50,
		bob:   -50,
	}

	assert.False(t, Validate(balances, []Suggestion{
		{From: bob, To: alice, Amount: 30},
	}))
	assert.False(t, Validate(balances, nil))
	assert.True(t, Validate(balances, []Suggestion{
		{From: bob, To: alice, Amount: 50},
	}))
}

func randomZeroSumBalances(rng *rand.Rand, n int) map[uuid.UUID]int64 {
	balances := make(map[uuid.UUID]int64, n)
	var sum int64
	for i := 0; i < n-1; i++ {
		amount := rng.Int63n(20_001) - 10_000
		balances[uuid.New()] = amount
		sum += amount
	}
	balances[uuid.New()] = -sum
	return balances
}
