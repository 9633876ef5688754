package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrMissingPayer            = errors.New("expense has no payer")
	ErrNoParticipants          = errors.New("expense has no participants")
	ErrDuplicateParticipant    = errors.New("duplicate participant in expense")
	ErrUnknownShareParticipant = errors.New("share references a participant not in the expense")
	ErrInvalidShareWeight      = errors.New("share weight must be a positive integer for every participant")
	ErrUnbalancedLedger        = errors.New("balances do not sum to zero")
	ErrNotGroupMember          = errors.New("user is not a member of the group")
	ErrMemberExists            = errors.New("user is already a member of the group")
	ErrSelfSettlement          = errors.New("cannot settle with yourself")
)
