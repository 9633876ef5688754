package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
	"github.com/Aryan-Railtown/bill-splitter/internal/service/ledger"
)

type settlementService interface {
	GroupBalances(ctx context.Context, groupID, actorID uuid.UUID) ([]ledger.MemberBalance, error)
	SettlementPlan(ctx context.Context, groupID, actorID uuid.UUID) ([]ledger.PlannedTransfer, error)
	RecordSettlement(ctx context.Context, req ledger.RecordSettlementRequest) (*domain.Settlement, error)
	ListSettlements(ctx context.Context, groupID, actorID uuid.UUID) ([]domain.Settlement, error)
}

type SettlementHandler struct {
	settlements settlementService
}

func NewSettlementHandler(settlements settlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

type balanceDTO struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Amount string    `json:"amount"`
}

func (h *SettlementHandler) Balances(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	balances, err := h.settlements.GroupBalances(r.Context(), groupID, actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]balanceDTO, 0, len(balances))
	for _, b := range balances {
		dtos = append(dtos, balanceDTO{
			UserID: b.UserID,
			Name:   b.Name,
			Email:  b.Email,
			Amount: formatAmount(b.Amount),
		})
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

type transferDTO struct {
	From   uuid.UUID `json:"from"`
	To     uuid.UUID `json:"to"`
	Amount string    `json:"amount"`
}

func (h *SettlementHandler) Plan(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	plan, err := h.settlements.SettlementPlan(r.Context(), groupID, actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transferDTO, 0, len(plan))
	for _, t := range plan {
		dtos = append(dtos, transferDTO{
			From:   t.FromUserID,
			To:     t.ToUserID,
			Amount: formatAmount(t.Amount),
		})
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

type recordSettlementRequest struct {
	From   uuid.UUID `json:"from"`
	To     uuid.UUID `json:"to"`
	Amount string    `json:"amount"`
}

func (r recordSettlementRequest) Validate() (int64, []FieldError) {
	var errs []FieldError

	if r.From == uuid.Nil {
		errs = append(errs, FieldError{Field: "from", Message: "required"})
	}
	if r.To == uuid.Nil {
		errs = append(errs, FieldError{Field: "to", Message: "required"})
	}

	cents, fieldErr := parseAmount("amount", r.Amount)
	if fieldErr != nil {
		errs = append(errs, *fieldErr)
	}

	return cents, errs
}

type settlementDTO struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *SettlementHandler) Record(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req recordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	cents, fields := req.Validate()
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	settlement, err := h.settlements.RecordSettlement(r.Context(), ledger.RecordSettlementRequest{
		GroupID:    groupID,
		ActorID:    actorID,
		FromUserID: req.From,
		ToUserID:   req.To,
		Amount:     cents,
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toSettlementDTO(settlement))
}

func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	settlements, err := h.settlements.ListSettlements(r.Context(), groupID, actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]settlementDTO, 0, len(settlements))
	for i := range settlements {
		dtos = append(dtos, toSettlementDTO(&settlements[i]))
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func toSettlementDTO(s *domain.Settlement) settlementDTO {
	return settlementDTO{
		ID:        s.ID,
		GroupID:   s.GroupID,
		From:      s.FromUserID,
		To:        s.ToUserID,
		Amount:    formatAmount(s.Amount),
		CreatedAt: s.CreatedAt,
	}
}
