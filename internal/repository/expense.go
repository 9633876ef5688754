package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

const expenseColumns = `id, group_id, paid_by, description, amount, created_by, created_at`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts the expense row and all of its share rows atomically.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, paid_by, description, amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		expense.ID, expense.GroupID, expense.PaidBy, expense.Description,
		expense.Amount, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: insert expense: %w", err)
	}

	for _, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, user_id, weight)
			VALUES ($1, $2, $3)`,
			expense.ID, share.UserID, share.Weight,
		)
		if err != nil {
			return fmt.Errorf("Create: insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

// ListByGroup returns the group's expenses in creation order, each with its
// shares populated.
func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		WHERE group_id = $1 ORDER BY created_at, id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByGroup: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var e domain.Expense
		err := rows.Scan(
			&e.ID, &e.GroupID, &e.PaidBy, &e.Description,
			&e.Amount, &e.CreatedBy, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ListByGroup: scan: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByGroup: rows: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	shareRows, err := r.db.QueryContext(ctx,
		`SELECT s.expense_id, s.user_id, s.weight
		FROM expense_shares s
		JOIN expenses e ON e.id = s.expense_id
		WHERE e.group_id = $1
		ORDER BY s.expense_id, s.user_id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByGroup: shares: %w", err)
	}
	defer shareRows.Close()

	for shareRows.Next() {
		var s domain.ExpenseShare
		if err := shareRows.Scan(&s.ExpenseID, &s.UserID, &s.Weight); err != nil {
			return nil, fmt.Errorf("ListByGroup: scan share: %w", err)
		}
		i, ok := index[s.ExpenseID]
		if !ok {
			return nil, fmt.Errorf("ListByGroup: share for unknown expense %s", s.ExpenseID)
		}
		expenses[i].Shares = append(expenses[i].Shares, s)
	}
	if err := shareRows.Err(); err != nil {
		return nil, fmt.Errorf("ListByGroup: share rows: %w", err)
	}

	return expenses, nil
}
