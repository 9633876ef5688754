package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

func TestAllocate_EqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		participants []string
		want         map[string]int64
	}{
		{
			name:         "evenly divisible",
			amount:       900,
			participants: []string{"A", "B", "C"},
			want:         map[string]int64{"A": 300, "B": 300, "C": 300},
		},
		{
			name:         "remainder to first in sorted order",
			amount:       100,
			participants: []string{"C", "A", "B"},
			want:         map[string]int64{"A": 34, "B": 33, "C": 33},
		},
		{
			name:         "two remainder units",
			amount:       11,
			participants: []string{"B", "A", "C"},
			want:         map[string]int64{"A": 4, "B": 4, "C": 3},
		},
		{
			name:         "single participant takes everything",
			amount:       250,
			participants: []string{"A"},
			want:         map[string]int64{"A": 250},
		},
		{
			name:         "amount smaller than group size",
			amount:       2,
			participants: []string{"A", "B", "C"},
			want:         map[string]int64{"A": 1, "B": 1, "C": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.amount, tt.participants, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var sum int64
			for _, s := range got {
				sum += s
			}
			assert.Equal(t, tt.amount, sum, "allocation must reconstruct amount exactly")
		})
	}
}

func TestAllocate_WeightedSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		participants []string
		shares       map[string]int64
		want         map[string]int64
	}{
		{
			name:         "exact proportions",
			amount:       1000,
			participants: []string{"A", "B"},
			shares:       map[string]int64{"A": 3, "B": 1},
			want:         map[string]int64{"A": 750, "B": 250},
		},
		{
			name:         "largest remainder gets the extra unit",
			amount:       100,
			participants: []string{"A", "B", "C"},
			shares:       map[string]int64{"A": 1, "B": 1, "C": 1},
			want:         map[string]int64{"A": 34, "B": 33, "C": 33},
		},
		{
			name:         "uneven weights with rounding",
			amount:       100,
			participants: []string{"A", "B", "C"},
			shares:       map[string]int64{"A": 1, "B": 1, "C": 4},
			// exact shares: 16.66, 16.66, 66.66; A and B tie on remainder,
			// C's remainder matches too, so ascending id order breaks it.
			want: map[string]int64{"A": 17, "B": 17, "C": 66},
		},
		{
			name:         "weight dwarfing the others",
			amount:       7,
			participants: []string{"A", "B"},
			shares:       map[string]int64{"A": 99, "B": 1},
			want:         map[string]int64{"A": 7, "B": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.amount, tt.participants, tt.shares)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var sum int64
			for _, s := range got {
				sum += s
			}
			assert.Equal(t, tt.amount, sum, "allocation must reconstruct amount exactly")
		})
	}
}

func TestAllocate_Validation(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		participants []string
		shares       map[string]int64
		wantErr      error
	}{
		{
			name:         "zero amount",
			amount:       0,
			participants: []string{"A"},
			wantErr:      domain.ErrInvalidAmount,
		},
		{
			name:         "negative amount",
			amount:       -500,
			participants: []string{"A"},
			wantErr:      domain.ErrInvalidAmount,
		},
		{
			name:    "no participants",
			amount:  100,
			wantErr: domain.ErrNoParticipants,
		},
		{
			name:         "duplicate participant",
			amount:       100,
			participants: []string{"A", "B", "A"},
			wantErr:      domain.ErrDuplicateParticipant,
		},
		{
			name:         "share for unknown participant",
			amount:       100,
			participants: []string{"A", "B"},
			shares:       map[string]int64{"A": 1, "B": 1, "C": 1},
			wantErr:      domain.ErrUnknownShareParticipant,
		},
		{
			name:         "zero weight",
			amount:       100,
			participants: []string{"A", "B"},
			shares:       map[string]int64{"A": 1, "B": 0},
			wantErr:      domain.ErrInvalidShareWeight,
		},
		{
			name:         "participant missing from shares",
			amount:       100,
			participants: []string{"A", "B"},
			shares:       map[string]int64{"A": 1},
			wantErr:      domain.ErrInvalidShareWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(tt.amount, tt.participants, tt.shares)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		want     Balances
	}{
		{
			name: "payer nets own share against credit",
			expenses: []Expense{
				{Payer: "A", Amount: 900, Participants: []string{"A", "B", "C"}},
			},
			want: Balances{"A": 600, "B": -300, "C": -300},
		},
		{
			name: "payer outside participant set",
			expenses: []Expense{
				{Payer: "D", Amount: 300, Participants: []string{"A", "B", "C"}},
			},
			want: Balances{"A": -100, "B": -100, "C": -100, "D": 300},
		},
		{
			name: "multiple expenses accumulate",
			expenses: []Expense{
				{Payer: "A", Amount: 600, Participants: []string{"A", "B"}},
				{Payer: "B", Amount: 400, Participants: []string{"A", "B"}},
			},
			want: Balances{"A": 100, "B": -100},
		},
		{
			name: "weighted expense",
			expenses: []Expense{
				{Payer: "B", Amount: 1000, Participants: []string{"A", "B"}, Shares: map[string]int64{"A": 3, "B": 1}},
			},
			want: Balances{"A": -750, "B": 750},
		},
		{
			name:     "no expenses",
			expenses: nil,
			want:     Balances{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildBalances(tt.expenses)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildBalances_Conservation(t *testing.T) {
	expenses := []Expense{
		{Payer: "alice", Amount: 12345, Participants: []string{"alice", "bob", "carol"}},
		{Payer: "bob", Amount: 977, Participants: []string{"carol", "dave"}},
		{Payer: "carol", Amount: 10001, Participants: []string{"alice", "bob", "carol", "dave", "erin"}},
		{Payer: "dave", Amount: 333, Participants: []string{"alice", "erin"}, Shares: map[string]int64{"alice": 7, "erin": 2}},
	}

	balances, err := BuildBalances(expenses)
	require.NoError(t, err)

	var sum int64
	for _, v := range balances {
		sum += v
	}
	assert.Zero(t, sum)
}

func TestBuildBalances_Validation(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		wantErr  error
	}{
		{
			name: "zero amount",
			expenses: []Expense{
				{Payer: "A", Amount: 0, Participants: []string{"A", "B"}},
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "missing payer",
			expenses: []Expense{
				{Amount: 100, Participants: []string{"A", "B"}},
			},
			wantErr: domain.ErrMissingPayer,
		},
		{
			name: "bad expense rejects the whole list",
			expenses: []Expense{
				{Payer: "A", Amount: 100, Participants: []string{"A", "B"}},
				{Payer: "B", Amount: 100, Participants: nil},
			},
			wantErr: domain.ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := BuildBalances(tt.expenses)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, balances)
		})
	}
}

func TestPlanSettlement(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []Transfer
	}{
		{
			name:     "two debtors one creditor",
			balances: Balances{"A": 600, "B": -300, "C": -300},
			want: []Transfer{
				{From: "B", To: "A", Amount: 300},
				{From: "C", To: "A", Amount: 300},
			},
		},
		{
			name:     "already settled",
			balances: Balances{"A": 0, "B": 0},
			want:     []Transfer{},
		},
		{
			name:     "empty input",
			balances: Balances{},
			want:     []Transfer{},
		},
		{
			name:     "largest debtor pays largest creditor first",
			balances: Balances{"A": 500, "B": 100, "C": -450, "D": -150},
			want: []Transfer{
				{From: "C", To: "A", Amount: 450},
				{From: "D", To: "B", Amount: 100},
				{From: "D", To: "A", Amount: 50},
			},
		},
		{
			name:     "tie broken by ascending identifier",
			balances: Balances{"B": -100, "A": -100, "D": 100, "C": 100},
			want: []Transfer{
				{From: "A", To: "C", Amount: 100},
				{From: "B", To: "D", Amount: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanSettlement(tt.balances)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanSettlement_ZeroesEveryBalance(t *testing.T) {
	balances := Balances{
		"alice": 12450,
		"bob":   -3000,
		"carol": -9450,
		"dave":  7000,
		"erin":  -7000,
		"frank": 0,
	}

	transfers, err := PlanSettlement(balances)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(transfers), 4, "at most n-1 transfers for n non-zero balances")

	applied := make(Balances, len(balances))
	for p, v := range balances {
		applied[p] = v
	}
	for _, tr := range transfers {
		assert.Positive(t, tr.Amount)
		applied[tr.From] += tr.Amount
		applied[tr.To] -= tr.Amount
	}
	for p, v := range applied {
		assert.Zerof(t, v, "participant %s not settled", p)
	}
}

func TestPlanSettlement_Deterministic(t *testing.T) {
	balances := Balances{"A": 250, "B": -250, "C": 300, "D": -300, "E": 0}

	first, err := PlanSettlement(balances)
	require.NoError(t, err)
	second, err := PlanSettlement(balances)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanSettlement_DoesNotMutateInput(t *testing.T) {
	balances := Balances{"A": 100, "B": -100}

	_, err := PlanSettlement(balances)
	require.NoError(t, err)

	assert.Equal(t, Balances{"A": 100, "B": -100}, balances)
}

func TestPlanSettlement_UnbalancedInput(t *testing.T) {
	_, err := PlanSettlement(Balances{"A": 100, "B": -50})
	require.ErrorIs(t, err, domain.ErrUnbalancedLedger)
}
