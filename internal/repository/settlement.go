package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

const settlementColumns = `id, group_id, from_user_id, to_user_id, amount, recorded_by, created_at`

type SettlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_user_id, to_user_id, amount, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		settlement.ID, settlement.GroupID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount, settlement.RecordedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *SettlementRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Settlement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		WHERE group_id = $1 ORDER BY created_at, id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByGroup: %w", err)
	}
	defer rows.Close()

	var settlements []domain.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByGroup: scan: %w", err)
		}
		settlements = append(settlements, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByGroup: rows: %w", err)
	}
	return settlements, nil
}

func scanSettlement(s scanner) (*domain.Settlement, error) {
	var st domain.Settlement
	err := s.Scan(
		&st.ID, &st.GroupID, &st.FromUserID, &st.ToUserID,
		&st.Amount, &st.RecordedBy, &st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
