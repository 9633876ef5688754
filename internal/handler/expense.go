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

type expenseService interface {
	AddExpense(ctx context.Context, req ledger.AddExpenseRequest) (*domain.Expense, error)
	ListExpenses(ctx context.Context, groupID, actorID uuid.UUID) ([]domain.Expense, error)
}

type ExpenseHandler struct {
	expenses expenseService
}

func NewExpenseHandler(expenses expenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type createExpenseRequest struct {
	PaidBy       uuid.UUID        `json:"paid_by"`
	Description  string           `json:"description"`
	Amount       string           `json:"amount"`
	Participants []uuid.UUID      `json:"participants"`
	Shares       map[string]int64 `json:"shares,omitempty"`
}

func (r createExpenseRequest) Validate() (int64, map[uuid.UUID]int64, []FieldError) {
	var errs []FieldError

	if r.PaidBy == uuid.Nil {
		errs = append(errs, FieldError{Field: "paid_by", Message: "required"})
	}
	if len(r.Participants) == 0 {
		errs = append(errs, FieldError{Field: "participants", Message: "at least one participant required"})
	}

	cents, fieldErr := parseAmount("amount", r.Amount)
	if fieldErr != nil {
		errs = append(errs, *fieldErr)
	}

	var weights map[uuid.UUID]int64
	if r.Shares != nil {
		weights = make(map[uuid.UUID]int64, len(r.Shares))
		for key, w := range r.Shares {
			id, err := uuid.Parse(key)
			if err != nil {
				errs = append(errs, FieldError{Field: "shares", Message: "keys must be participant user ids"})
				continue
			}
			weights[id] = w
		}
	}

	return cents, weights, errs
}

type expenseDTO struct {
	ID          uuid.UUID         `json:"id"`
	GroupID     uuid.UUID         `json:"group_id"`
	PaidBy      uuid.UUID         `json:"paid_by"`
	Description string            `json:"description"`
	Amount      string            `json:"amount"`
	Shares      []expenseShareDTO `json:"shares"`
	CreatedAt   time.Time         `json:"created_at"`
}

type expenseShareDTO struct {
	UserID uuid.UUID `json:"user_id"`
	Weight int64     `json:"weight"`
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	cents, weights, fields := req.Validate()
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	expense, err := h.expenses.AddExpense(r.Context(), ledger.AddExpenseRequest{
		GroupID:      groupID,
		ActorID:      actorID,
		PaidBy:       req.PaidBy,
		Description:  req.Description,
		Amount:       cents,
		Participants: req.Participants,
		Weights:      weights,
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toExpenseDTO(expense))
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, groupID, appErr := actorAndGroup(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	expenses, err := h.expenses.ListExpenses(r.Context(), groupID, actorID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]expenseDTO, 0, len(expenses))
	for i := range expenses {
		dtos = append(dtos, toExpenseDTO(&expenses[i]))
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func toExpenseDTO(e *domain.Expense) expenseDTO {
	dto := expenseDTO{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Description: e.Description,
		Amount:      formatAmount(e.Amount),
		CreatedAt:   e.CreatedAt,
	}
	for _, s := range e.Shares {
		dto.Shares = append(dto.Shares, expenseShareDTO{UserID: s.UserID, Weight: s.Weight})
	}
	return dto
}
