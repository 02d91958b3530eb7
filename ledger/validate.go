package ledger

import "github.com/google/uuid"

// Validate reports whether applying the suggestions to the balances zeroes
// every participant exactly. It works on a copy and is meant as a correctness
// oracle in tests, not as part of the runtime path.
func Validate(balances map[uuid.UUID]int64, suggestions []Suggestion) bool {
	working := make(map[uuid.UUID]int64, len(balances))
	for userID, amount := range balances {
		working[userID] = amount
	}

	for _, s := range suggestions {
		working[s.From] += s.Amount
		working[s.To] -= s.Amount
	}

	for _, amount := range working {
		if amount != 0 {
			return false
		}
	}
	return true
}
