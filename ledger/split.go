package ledger

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Split types supported by Allocate.
const (
	SplitEqual      = "equal"
	SplitExact      = "exact"
	SplitPercentage = "percentage"
	SplitShares     = "shares"
)

// Tolerance for percentage sums, in percent.
const percentTolerance = 0.01

// Split is one participant's allocated share of an expense total.
type Split struct {
	UserID uuid.UUID
	Amount int64
}

// Share is a caller-supplied split instruction for one participant. Which
// field is read depends on the split type: Amount for exact, Percent for
// percentage, Units for shares.
type Share struct {
	UserID  uuid.UUID
	Amount  int64
	Percent float64
	Units   int64
}

// Allocate computes per-participant owed amounts for an expense total.
// For equal splits the total is divided over participants in list order; for
// the other types the shares slice drives the allocation. The returned splits
// always sum to total exactly; the participant who absorbs the rounding
// remainder is the first (equal) or the last (percentage, shares) in the
// caller-supplied order, so callers must pass a deterministic order.
func Allocate(total int64, splitType string, participants []uuid.UUID, shares []Share) ([]Split, error) {
	if total < 0 {
		return nil, &InvalidSplitError{Reason: "total must not be negative"}
	}

	switch splitType {
	case SplitEqual:
		return equalSplit(total, participants)
	case SplitExact:
		return exactSplit(total, shares)
	case SplitPercentage:
		return percentageSplit(total, shares)
	case SplitShares:
		return sharesSplit(total, shares)
	default:
		return nil, &InvalidSplitError{Reason: fmt.Sprintf("unknown split type %q", splitType)}
	}
}

func equalSplit(total int64, participants []uuid.UUID) ([]Split, error) {
	parts, err := distribute(total, len(participants))
	if err != nil {
		return nil, err
	}

	splits := make([]Split, len(participants))
	for i, id := range participants {
		splits[i] = Split{UserID: id, Amount: parts[i]}
	}
	return splits, nil
}

func exactSplit(total int64, shares []Share) ([]Split, error) {
	if len(shares) == 0 {
		return nil, &EmptyGroupError{SplitType: SplitExact}
	}

	var sum int64
	splits := make([]Split, len(shares))
	for i, s := range shares {
		if s.Amount < 0 {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("negative amount for user %s", s.UserID)}
		}
		sum += s.Amount
		splits[i] = Split{UserID: s.UserID, Amount: s.Amount}
	}

	if sum != total {
		return nil, &SplitMismatchError{Got: sum, Want: total, Unit: "cents"}
	}
	return splits, nil
}

func percentageSplit(total int64, shares []Share) ([]Split, error) {
	if len(shares) == 0 {
		return nil, &EmptyGroupError{SplitType: SplitPercentage}
	}

	var totalPercent float64
	for _, s := range shares {
		if s.Percent < 0 {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("negative percentage for user %s", s.UserID)}
		}
		totalPercent += s.Percent
	}
	if math.Abs(totalPercent-100) > percentTolerance {
		return nil, &SplitMismatchError{
			Got:  int64(math.Round(totalPercent * 100)),
			Want: 10000,
			Unit: "basis points",
		}
	}

	// Every participant except the last gets round(total*pct/100); the last
	// one absorbs whatever remains, which forces the sum to reconcile.
	splits := make([]Split, len(shares))
	var allocated int64
	for i, s := range shares {
		var amount int64
		if i == len(shares)-1 {
			amount = total - allocated
		} else {
			amount = int64(math.Round(float64(total) * s.Percent / 100))
		}
		if amount < 0 {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("rounding produced a negative split for user %s", s.UserID)}
		}
		allocated += amount
		splits[i] = Split{UserID: s.UserID, Amount: amount}
	}
	return splits, nil
}

func sharesSplit(total int64, shares []Share) ([]Split, error) {
	if len(shares) == 0 {
		return nil, &EmptyGroupError{SplitType: SplitShares}
	}

	var totalUnits int64
	for _, s := range shares {
		if s.Units < 0 {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("negative share count for user %s", s.UserID)}
		}
		totalUnits += s.Units
	}
	if totalUnits <= 0 {
		return nil, &InvalidSplitError{Reason: "total share count must be greater than 0"}
	}

	// Same last-element-absorbs-remainder rule as percentage splits.
	splits := make([]Split, len(shares))
	var allocated int64
	for i, s := range shares {
		var amount int64
		if i == len(shares)-1 {
			amount = total - allocated
		} else {
			amount = (total*s.Units + totalUnits/2) / totalUnits
		}
		if amount < 0 {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("rounding produced a negative split for user %s", s.UserID)}
		}
		allocated += amount
		splits[i] = Split{UserID: s.UserID, Amount: amount}
	}
	return splits, nil
}
