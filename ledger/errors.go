package ledger

import "fmt"

// EmptyGroupError is returned when a split has nobody to allocate to.
type EmptyGroupError struct {
	SplitType string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no participants to split among (split type %q)", e.SplitType)
}

// InvalidSplitError is returned when a split specification would produce an
// invalid allocation (negative amount, negative weight, zero total shares).
type InvalidSplitError struct {
	Reason string
}

func (e *InvalidSplitError) Error() string {
	return "invalid split: " + e.Reason
}

// SplitMismatchError is returned when the caller-supplied split values do not
// add up to what the expense requires. Got and Want are in the smallest
// currency unit for exact splits, and in basis points for percentage splits.
type SplitMismatchError struct {
	Got  int64
	Want int64
	Unit string
}

func (e *SplitMismatchError) Error() string {
	unit := e.Unit
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("split values add up to %d %s, expected %d", e.Got, unit, e.Want)
}

// ConservationViolationError is returned when a set of balances does not sum
// to zero. Balances are a pure function of expenses and settlements, so a
// non-zero sum means the underlying records are corrupt; retrying the same
// computation cannot succeed.
type ConservationViolationError struct {
	Sum int64
}

func (e *ConservationViolationError) Error() string {
	return fmt.Sprintf("balances sum to %d, expected 0", e.Sum)
}
