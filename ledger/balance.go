package ledger

import "github.com/google/uuid"

// Settlement statuses. Pending and cancelled settlements have no effect on
// balances; only completed ones do.
const (
	SettlementPending   = "pending"
	SettlementCompleted = "completed"
	SettlementCancelled = "cancelled"
)

// Expense is the slice of an expense record that balance computation needs.
type Expense struct {
	PaidBy uuid.UUID
	Amount int64
	Splits []Split
}

// Settlement is the slice of a settlement record that balance computation
// needs. From is the participant paying off debt, To the one being paid.
type Settlement struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount int64
	Status string
}

// ComputeBalances returns each participant's signed net balance: positive
// means they are owed money, negative means they owe. The result is a fresh
// map built from the given snapshot; callers never share state with it.
//
// For every expense the payer is credited the full amount and each split
// participant is debited their share, so a payer who is also a splitter nets
// to amount minus their own share. A completed settlement credits From (their
// debt shrinks) and debits To (their credit shrinks).
//
// Balances always sum to zero when splits sum to their expense totals. A
// non-zero sum means the snapshot is corrupt and is reported as a
// ConservationViolationError.
func ComputeBalances(expenses []Expense, settlements []Settlement) (map[uuid.UUID]int64, error) {
	balances := make(map[uuid.UUID]int64)

	for _, exp := range expenses {
		balances[exp.PaidBy] += exp.Amount
		for _, split := range exp.Splits {
			balances[split.UserID] -= split.Amount
		}
	}

	for _, s := range settlements {
		if s.Status != SettlementCompleted {
			continue
		}
		balances[s.From] += s.Amount
		balances[s.To] -= s.Amount
	}

	var sum int64
	for _, amount := range balances {
		sum += amount
	}
	if sum != 0 {
		return nil, &ConservationViolationError{Sum: sum}
	}

	return balances, nil
}
