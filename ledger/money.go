// Package ledger implements the settlement math for shared expenses: split
// allocation, net balance aggregation, greedy debt simplification and a
// validation oracle. All amounts are int64 in the smallest currency unit;
// the package is pure and never touches the database.
package ledger

// distribute splits total into n parts that differ by at most one unit and
// sum to total exactly. The first total%n parts get the extra unit, so the
// caller's ordering decides who absorbs the rounding remainder.
func distribute(total int64, n int) ([]int64, error) {
	if n <= 0 {
		return nil, &EmptyGroupError{SplitType: SplitEqual}
	}
	if total < 0 {
		return nil, &InvalidSplitError{Reason: "total must not be negative"}
	}

	base := total / int64(n)
	remainder := total - base*int64(n)

	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
		if int64(i) < remainder {
			parts[i]++
		}
	}
	return parts, nil
}
