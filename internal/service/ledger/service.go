// Package ledger orchestrates group expense tracking: capturing expenses,
// netting them into balances via the split core, and planning/recording
// settlements.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

type groupRepo interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.GroupMember, error)
}

type expenseRepo interface {
	Create(ctx context.Context, expense *domain.Expense) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Expense, error)
}

type settlementRepo interface {
	Create(ctx context.Context, settlement *domain.Settlement) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Settlement, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service struct {
	groups      groupRepo
	expenses    expenseRepo
	settlements settlementRepo
	users       userRepo
}

func NewService(groups groupRepo, expenses expenseRepo, settlements settlementRepo, users userRepo) *Service {
	return &Service{
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
		users:       users,
	}
}

// requireMember gates every group-scoped operation. A group the actor does
// not belong to behaves exactly like a group that does not exist.
func (s *Service) requireMember(ctx context.Context, groupID, actorID uuid.UUID) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return fmt.Errorf("requireMember: %w", err)
	}

	ok, err := s.groups.IsMember(ctx, groupID, actorID)
	if err != nil {
		return fmt.Errorf("requireMember: %w", err)
	}
	if !ok {
		return fmt.Errorf("requireMember: %w", domain.ErrNotFound)
	}
	return nil
}

// memberSet returns the group's membership keyed by user ID for fast
// participant checks.
func (s *Service) memberSet(ctx context.Context, groupID uuid.UUID) (map[uuid.UUID]domain.GroupMember, error) {
	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("memberSet: %w", err)
	}

	set := make(map[uuid.UUID]domain.GroupMember, len(members))
	for _, m := range members {
		set[m.UserID] = m
	}
	return set, nil
}
