package ledger

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBalancesEqualSplitScenario(t *testing.T) {
	// amount=100 paid by alice, split equally among alice, bob, carol.
	splits, err := Allocate(100, SplitEqual, []uuid.UUID{alice, bob, carol}, nil)
	require.NoError(t, err)

	balances, err := ComputeBalances([]Expense{
		{PaidBy: alice, Amount: 100, Splits: splits},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(66), balances[alice])
	assert.Equal(t, int64(-33), balances[bob])
	assert.Equal(t, int64(-33), balances[carol])
}

func TestComputeBalancesPayerNotSplitter(t *testing.T) {
	balances, err := ComputeBalances([]Expense{
		{PaidBy: alice, Amount: 100, Splits: []Split{
			{UserID: bob, Amount: 50},
			{UserID: carol, Amount: 50},
		}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(100), balances[alice])
	assert.Equal(t, int64(-50), balances[bob])
	assert.Equal(t, int64(-50), balances[carol])
}

func TestComputeBalancesOnlyCompletedSettlementsCount(t *testing.T) {
	expenses := []Expense{
		{PaidBy: alice, Amount: 100, Splits: []Split{
			{UserID: bob, Amount: 100},
		}},
	}

	balances, err := ComputeBalances(expenses, []Settlement{
		{From: bob, To: alice, Amount: 40, Status: SettlementCompleted},
		{From: bob, To: alice, Amount: 30, Status: SettlementPending},
		{From: bob, To: alice, Amount: 30, Status: SettlementCancelled},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(60), balances[alice])
	assert.Equal(t, int64(-60), balances[bob])
}

func TestComputeBalancesSettlementZeroesDebt(t *testing.T) {
	expenses := []Expense{
		{PaidBy: alice, Amount: 80, Splits: []Split{
			{UserID: bob, Amount: 80},
		}},
	}

	balances, err := ComputeBalances(expenses, []Settlement{
		{From: bob, To: alice, Amount: 80, Status: SettlementCompleted},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), balances[alice])
	assert.Equal(t, int64(0), balances[bob])
}

func TestComputeBalancesConservationViolation(t *testing.T) {
	// Splits that don't add up to the expense total: corrupt snapshot.
	_, err := ComputeBalances([]Expense{
		{PaidBy: alice, Amount: 100, Splits: []Split{
			{UserID: bob, Amount: 40},
		}},
	}, nil)

	var conservation *ConservationViolationError
	require.ErrorAs(t, err, &conservation)
	assert.Equal(t, int64(60), conservation.Sum)
}

func TestComputeBalancesEmptyInput(t *testing.T) {
	balances, err := ComputeBalances(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, balances)
}

// Balances over any set of exactly-allocated expenses and settlements always
// sum to zero.
func TestComputeBalancesConservationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	participants := []uuid.UUID{alice, bob, carol, dave}
	for i := 0; i < 300; i++ {
		var expenses []Expense
		for e := 0; e < 1+rng.Intn(10); e++ {
			total := rng.Int63n(100_000)
			splits, err := Allocate(total, SplitEqual, participants, nil)
			require.NoError(t, err)
			expenses = append(expenses, Expense{
				PaidBy: participants[rng.Intn(len(participants))],
				Amount: total,
				Splits: splits,
			})
		}

		var settlements []Settlement
		for s := 0; s < rng.Intn(5); s++ {
			from := participants[rng.Intn(len(participants))]
			to := participants[rng.Intn(len(participants))]
			settlements = append(settlements, Settlement{
				From:   from,
				To:     to,
				Amount: 1 + rng.Int63n(10_000),
				Status: SettlementCompleted,
			})
		}

		balances, err := ComputeBalances(expenses, settlements)
		require.NoError(t, err)

		var sum int64
		for _, amount := range balances {
			sum += amount
		}
		assert.Equal(t, int64(0), sum)
	}
}
