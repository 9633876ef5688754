package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/auth"
	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

type groupService interface {
	CreateGroup(ctx context.Context, name string, creatorID uuid.UUID) (*domain.Group, error)
	ListGroups(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	GetGroup(ctx context.Context, groupID, actorID uuid.UUID) (*domain.Group, []domain.GroupMember, error)
	AddMember(ctx context.Context, groupID, actorID uuid.UUID, email string) (*domain.GroupMember, error)
}

type GroupHandler struct {
	groups groupService
}

func NewGroupHandler(groups groupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

type groupDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	CreatedBy uuid.UUID   `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
	Members   []memberDTO `json:"members,omitempty"`
}

type memberDTO struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

type createGroupRequest struct {
	Name string `json:"name"`
}

func (r createGroupRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	return errs
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name, actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toGroupDTO(group, nil))
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	groups, err := h.groups.ListGroups(r.Context(), actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]groupDTO, 0, len(groups))
	for i := range groups {
		dtos = append(dtos, toGroupDTO(&groups[i], nil))
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	group, members, err := h.groups.GetGroup(r.Context(), groupID, actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toGroupDTO(group, members))
}

type addMemberRequest struct {
	Email string `json:"email"`
}

func (r addMemberRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	return errs
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	member, err := h.groups.AddMember(r.Context(), groupID, actorID, strings.ToLower(req.Email))
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, memberDTO{
		UserID:   member.UserID,
		Name:     member.Name,
		Email:    member.Email,
		JoinedAt: member.JoinedAt,
	})
}

func toGroupDTO(g *domain.Group, members []domain.GroupMember) groupDTO {
	dto := groupDTO{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
	for _, m := range members {
		dto.Members = append(dto.Members, memberDTO{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			JoinedAt: m.JoinedAt,
		})
	}
	return dto
}
