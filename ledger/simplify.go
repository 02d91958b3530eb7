package ledger

import (
	"sort"

	"github.com/google/uuid"
)

// Suggestion is a proposed repayment from one participant to another.
// Amount is always positive.
type Suggestion struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount int64
}

type partyBalance struct {
	userID uuid.UUID
	amount int64
}

// Simplify greedily matches the largest debtor against the largest creditor
// until every balance is settled, producing a short (not provably minimal)
// repayment list. Ties on amount are broken by participant ID, so the output
// is identical across runs on the same input.
//
// The input must sum to zero; a leftover after the sweep means the balances
// were corrupt upstream and is reported as a ConservationViolationError.
func Simplify(balances map[uuid.UUID]int64) ([]Suggestion, error) {
	var debtors, creditors []partyBalance
	for userID, amount := range balances {
		switch {
		case amount < 0:
			debtors = append(debtors, partyBalance{userID: userID, amount: -amount})
		case amount > 0:
			creditors = append(creditors, partyBalance{userID: userID, amount: amount})
		}
	}

	sortDescending(debtors)
	sortDescending(creditors)

	var suggestions []Suggestion
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}

		if amount > 0 {
			suggestions = append(suggestions, Suggestion{
				From:   debtors[i].userID,
				To:     creditors[j].userID,
				Amount: amount,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}

	// Since balances sum to zero, both sides exhaust together.
	var leftover int64
	for ; i < len(debtors); i++ {
		leftover -= debtors[i].amount
	}
	for ; j < len(creditors); j++ {
		leftover += creditors[j].amount
	}
	if leftover != 0 {
		return nil, &ConservationViolationError{Sum: leftover}
	}

	return suggestions, nil
}

// sortDescending orders by amount, largest first, tie-broken by participant
// ID so that equal amounts still settle in a reproducible order.
func sortDescending(parties []partyBalance) {
	sort.Slice(parties, func(a, b int) bool {
		if parties[a].amount != parties[b].amount {
			return parties[a].amount > parties[b].amount
		}
		return parties[a].userID.String() < parties[b].userID.String()
	})
}
