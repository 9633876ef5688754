package ledger_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
	"github.com/Aryan-Railtown/bill-splitter/internal/repository"
	"github.com/Aryan-Railtown/bill-splitter/internal/service/ledger"
	"github.com/Aryan-Railtown/bill-splitter/internal/testutil"
)

func setupLedgerService(db *sql.DB) *ledger.Service {
	return ledger.NewService(
		repository.NewGroupRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewSettlementRepository(db),
		repository.NewUserRepository(db),
	)
}

func balancesByUser(balances []ledger.MemberBalance) map[uuid.UUID]int64 {
	m := make(map[uuid.UUID]int64, len(balances))
	for _, b := range balances {
		m[b.UserID] = b.Amount
	}
	return m
}

func TestExpenseToSettlement_FullFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupLedgerService(db)
	ctx := context.Background()

	amir := testutil.SeedUser(t, db, "amir@test.com", "Amir")
	logan := testutil.SeedUser(t, db, "logan@test.com", "Logan")
	levi := testutil.SeedUser(t, db, "levi@test.com", "Levi")
	group := testutil.SeedGroup(t, db, "ski trip", amir, logan, levi)

	// Amir fronts 9.00 for the three of them; 3.00 each.
	expense, err := svc.AddExpense(ctx, ledger.AddExpenseRequest{
		GroupID:      group.ID,
		ActorID:      amir.ID,
		PaidBy:       amir.ID,
		Description:  "lift tickets",
		Amount:       900,
		Participants: []uuid.UUID{amir.ID, logan.ID, levi.ID},
	})
	require.NoError(t, err)
	require.Len(t, expense.Shares, 3)

	balances, err := svc.GroupBalances(ctx, group.ID, amir.ID)
	require.NoError(t, err)
	byUser := balancesByUser(balances)
	assert.EqualValues(t, 600, byUser[amir.ID])
	assert.EqualValues(t, -300, byUser[logan.ID])
	assert.EqualValues(t, -300, byUser[levi.ID])

	plan, err := svc.SettlementPlan(ctx, group.ID, amir.ID)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	for _, tr := range plan {
		assert.Equal(t, amir.ID, tr.ToUserID)
		assert.EqualValues(t, 300, tr.Amount)
	}

	// Logan pays up; his balance and Amir's shrink accordingly.
	_, err = svc.RecordSettlement(ctx, ledger.RecordSettlementRequest{
		GroupID:    group.ID,
		ActorID:    logan.ID,
		FromUserID: logan.ID,
		ToUserID:   amir.ID,
		Amount:     300,
	})
	require.NoError(t, err)

	balances, err = svc.GroupBalances(ctx, group.ID, amir.ID)
	require.NoError(t, err)
	byUser = balancesByUser(balances)
	assert.EqualValues(t, 300, byUser[amir.ID])
	assert.EqualValues(t, 0, byUser[logan.ID])
	assert.EqualValues(t, -300, byUser[levi.ID])

	plan, err = svc.SettlementPlan(ctx, group.ID, amir.ID)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, levi.ID, plan[0].FromUserID)
	assert.Equal(t, amir.ID, plan[0].ToUserID)
	assert.EqualValues(t, 300, plan[0].Amount)
}

func TestWeightedExpense_Persistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupLedgerService(db)
	ctx := context.Background()

	amir := testutil.SeedUser(t, db, "amir@test.com", "Amir")
	logan := testutil.SeedUser(t, db, "logan@test.com", "Logan")
	group := testutil.SeedGroup(t, db, "flat", amir, logan)

	_, err := svc.AddExpense(ctx, ledger.AddExpenseRequest{
		GroupID:      group.ID,
		ActorID:      amir.ID,
		PaidBy:       amir.ID,
		Description:  "rent",
		Amount:       100000,
		Participants: []uuid.UUID{amir.ID, logan.ID},
		Weights:      map[uuid.UUID]int64{amir.ID: 3, logan.ID: 1},
	})
	require.NoError(t, err)

	balances, err := svc.GroupBalances(ctx, group.ID, logan.ID)
	require.NoError(t, err)
	byUser := balancesByUser(balances)
	assert.EqualValues(t, 25000, byUser[amir.ID])
	assert.EqualValues(t, -25000, byUser[logan.ID])

	expenses, err := svc.ListExpenses(ctx, group.ID, logan.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Len(t, expenses[0].Shares, 2)
}

func TestGroupAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupLedgerService(db)
	ctx := context.Background()

	amir := testutil.SeedUser(t, db, "amir@test.com", "Amir")
	outsider := testutil.SeedUser(t, db, "other@test.com", "Other")
	group := testutil.SeedGroup(t, db, "private", amir)

	_, err := svc.GroupBalances(ctx, group.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddExpense(ctx, ledger.AddExpenseRequest{
		GroupID:      group.ID,
		ActorID:      amir.ID,
		PaidBy:       amir.ID,
		Amount:       100,
		Participants: []uuid.UUID{amir.ID, outsider.ID},
	})
	require.ErrorIs(t, err, domain.ErrNotGroupMember)
}

func TestAddMemberByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupLedgerService(db)
	ctx := context.Background()

	amir := testutil.SeedUser(t, db, "amir@test.com", "Amir")
	logan := testutil.SeedUser(t, db, "logan@test.com", "Logan")
	group := testutil.SeedGroup(t, db, "dinner club", amir)

	member, err := svc.AddMember(ctx, group.ID, amir.ID, "logan@test.com")
	require.NoError(t, err)
	assert.Equal(t, logan.ID, member.UserID)

	_, err = svc.AddMember(ctx, group.ID, amir.ID, "logan@test.com")
	require.ErrorIs(t, err, domain.ErrMemberExists)

	_, err = svc.AddMember(ctx, group.ID, amir.ID, "nobody@test.com")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, members, err := svc.GetGroup(ctx, group.ID, amir.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
