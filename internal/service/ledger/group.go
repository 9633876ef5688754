package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
	"github.com/Aryan-Railtown/bill-splitter/internal/logging"
)

func (s *Service) CreateGroup(ctx context.Context, name string, creatorID uuid.UUID) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("CreateGroup: name: %w", domain.ErrInvalidRequest)
	}

	group := &domain.Group{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creatorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("CreateGroup: %w", err)
	}

	logging.FromContext(ctx).Info("group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

func (s *Service) ListGroups(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ListGroups: %w", err)
	}
	return groups, nil
}

func (s *Service) GetGroup(ctx context.Context, groupID, actorID uuid.UUID) (*domain.Group, []domain.GroupMember, error) {
	if err := s.requireMember(ctx, groupID, actorID); err != nil {
		return nil, nil, fmt.Errorf("GetGroup: %w", err)
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("GetGroup: %w", err)
	}

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("GetGroup: %w", err)
	}

	return group, members, nil
}

// AddMember adds an existing user, looked up by email, to the group. Any
// current member may invite.
func (s *Service) AddMember(ctx context.Context, groupID, actorID uuid.UUID, email string) (*domain.GroupMember, error) {
	if err := s.requireMember(ctx, groupID, actorID); err != nil {
		return nil, fmt.Errorf("AddMember: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("AddMember: %w", err)
	}

	if err := s.groups.AddMember(ctx, groupID, user.ID); err != nil {
		return nil, fmt.Errorf("AddMember: %w", err)
	}

	logging.FromContext(ctx).Info("member added", "group_id", groupID, "user_id", user.ID)

	return &domain.GroupMember{
		GroupID:  groupID,
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		JoinedAt: time.Now().UTC(),
	}, nil
}
