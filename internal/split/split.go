// Package split contains the expense-splitting core: netting a list of
// shared expenses into per-participant balances, and planning the transfers
// that settle them. All arithmetic is integer minor currency units (cents),
// so totals always reconcile exactly. Both entry points are pure functions
// and safe for concurrent use.
package split

import (
	"fmt"
	"sort"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

// Expense is one shared cost to be split. Participants is the set of people
// the cost is divided among; the payer need not be one of them. Shares, when
// non-nil, maps every participant to a positive weight for a proportional
// split. A nil Shares map means an equal split.
type Expense struct {
	Payer        string
	Amount       int64
	Participants []string
	Shares       map[string]int64
}

// Balances maps participant identifier to net position in minor units:
// positive means the participant is owed money, negative means they owe.
type Balances map[string]int64

// Transfer is a single debtor-to-creditor payment in a settlement plan.
type Transfer struct {
	From   string
	To     string
	Amount int64
}

// BuildBalances nets a list of expenses into a single balance map covering
// every identifier that appears as payer or participant. The resulting map
// always sums to exactly zero. Validation failures reject the whole input;
// no expense is partially applied.
func BuildBalances(expenses []Expense) (Balances, error) {
	balances := make(Balances)

	for i, e := range expenses {
		if e.Payer == "" {
			return nil, fmt.Errorf("BuildBalances: expense %d: %w", i, domain.ErrMissingPayer)
		}

		alloc, err := Allocate(e.Amount, e.Participants, e.Shares)
		if err != nil {
			return nil, fmt.Errorf("BuildBalances: expense %d: %w", i, err)
		}

		balances[e.Payer] += e.Amount
		for p, share := range alloc {
			balances[p] -= share
		}
	}

	return balances, nil
}

// Allocate divides amount among participants, returning each participant's
// share in minor units. The shares always sum to exactly amount: leftover
// units from integer division are handed out one at a time, to the first
// participants in ascending identifier order for an equal split, and in
// largest-remainder order (ties broken by ascending identifier) for a
// weighted split.
func Allocate(amount int64, participants []string, shares map[string]int64) (map[string]int64, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("Allocate: amount %d: %w", amount, domain.ErrInvalidAmount)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("Allocate: %w", domain.ErrNoParticipants)
	}

	sorted := make([]string, len(participants))
	copy(sorted, participants)
	sort.Strings(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, fmt.Errorf("Allocate: participant %q: %w", sorted[i], domain.ErrDuplicateParticipant)
		}
	}

	if shares == nil {
		return allocateEqual(amount, sorted), nil
	}
	return allocateWeighted(amount, sorted, shares)
}

func allocateEqual(amount int64, sorted []string) map[string]int64 {
	n := int64(len(sorted))
	base := amount / n
	remainder := amount % n

	alloc := make(map[string]int64, len(sorted))
	for i, p := range sorted {
		share := base
		if int64(i) < remainder {
			share++
		}
		alloc[p] = share
	}
	return alloc
}

func allocateWeighted(amount int64, sorted []string, shares map[string]int64) (map[string]int64, error) {
	for p := range shares {
		if !contains(sorted, p) {
			return nil, fmt.Errorf("allocateWeighted: share for %q: %w", p, domain.ErrUnknownShareParticipant)
		}
	}

	var totalWeight int64
	for _, p := range sorted {
		w, ok := shares[p]
		if !ok || w <= 0 {
			return nil, fmt.Errorf("allocateWeighted: weight for %q: %w", p, domain.ErrInvalidShareWeight)
		}
		totalWeight += w
	}

	type residue struct {
		id        string
		remainder int64
	}

	alloc := make(map[string]int64, len(sorted))
	remainders := make([]residue, 0, len(sorted))
	var allocated int64

	for _, p := range sorted {
		exact := amount * shares[p]
		share := exact / totalWeight
		alloc[p] = share
		allocated += share
		remainders = append(remainders, residue{id: p, remainder: exact % totalWeight})
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		if remainders[i].remainder != remainders[j].remainder {
			return remainders[i].remainder > remainders[j].remainder
		}
		return remainders[i].id < remainders[j].id
	})

	// leftover is always < len(sorted), so one extra unit each suffices.
	for i := int64(0); i < amount-allocated; i++ {
		alloc[remainders[i].id]++
	}

	return alloc, nil
}

// PlanSettlement converts a zero-sum balance map into an ordered list of
// transfers that zero every balance. It repeatedly matches the largest
// debtor with the largest creditor (ties broken by ascending identifier),
// producing at most n-1 transfers for n non-zero balances. The plan is not
// guaranteed to be the theoretical minimum, but it is deterministic and
// always terminates. The caller's map is never mutated.
func PlanSettlement(balances Balances) ([]Transfer, error) {
	var sum int64
	for _, v := range balances {
		sum += v
	}
	if sum != 0 {
		return nil, fmt.Errorf("PlanSettlement: balances sum to %d, want 0: %w", sum, domain.ErrUnbalancedLedger)
	}

	work := make(Balances, len(balances))
	var debtors, creditors []string
	for p, v := range balances {
		switch {
		case v < 0:
			work[p] = v
			debtors = append(debtors, p)
		case v > 0:
			work[p] = v
			creditors = append(creditors, p)
		}
	}
	sort.Strings(debtors)
	sort.Strings(creditors)

	transfers := make([]Transfer, 0, len(work))
	for len(debtors) > 0 && len(creditors) > 0 {
		di := largestByMagnitude(debtors, work)
		ci := largestByMagnitude(creditors, work)
		debtor, creditor := debtors[di], creditors[ci]

		amount := min(-work[debtor], work[creditor])
		transfers = append(transfers, Transfer{From: debtor, To: creditor, Amount: amount})

		work[debtor] += amount
		work[creditor] -= amount

		if work[debtor] == 0 {
			debtors = append(debtors[:di], debtors[di+1:]...)
		}
		if work[creditor] == 0 {
			creditors = append(creditors[:ci], creditors[ci+1:]...)
		}
	}

	return transfers, nil
}

// largestByMagnitude scans ids (kept in ascending order) and returns the
// index of the entry with the largest absolute balance. A strict comparison
// makes the first entry win ties, which is the smallest identifier.
func largestByMagnitude(ids []string, work Balances) int {
	best := 0
	bestMag := abs(work[ids[0]])
	for i := 1; i < len(ids); i++ {
		if mag := abs(work[ids[i]]); mag > bestMag {
			best, bestMag = i, mag
		}
	}
	return best
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func contains(sorted []string, id string) bool {
	i := sort.SearchStrings(sorted, id)
	return i < len(sorted) && sorted[i] == id
}
