package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

func TestRecordSettlement_RequestValidation(t *testing.T) {
	svc := &Service{}
	userA := uuid.New()
	userB := uuid.New()

	tests := []struct {
		name    string
		req     RecordSettlementRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     RecordSettlementRequest{FromUserID: userA, ToUserID: userB, Amount: 0},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     RecordSettlementRequest{FromUserID: userA, ToUserID: userB, Amount: -100},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "self settlement",
			req:     RecordSettlementRequest{FromUserID: userA, ToUserID: userA, Amount: 100},
			wantErr: domain.ErrSelfSettlement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordSettlement(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateSplit(t *testing.T) {
	svc := &Service{}
	userA := uuid.New()
	userB := uuid.New()

	t.Run("equal split defaults every weight to 1", func(t *testing.T) {
		shares, err := svc.validateSplit(AddExpenseRequest{
			Amount:       1000,
			Participants: []uuid.UUID{userA, userB},
		})
		require.NoError(t, err)
		require.Len(t, shares, 2)
		for _, s := range shares {
			assert.EqualValues(t, 1, s.Weight)
		}
	})

	t.Run("weighted split keeps supplied weights", func(t *testing.T) {
		shares, err := svc.validateSplit(AddExpenseRequest{
			Amount:       1000,
			Participants: []uuid.UUID{userA, userB},
			Weights:      map[uuid.UUID]int64{userA: 3, userB: 1},
		})
		require.NoError(t, err)
		require.Len(t, shares, 2)
		byUser := map[uuid.UUID]int64{}
		for _, s := range shares {
			byUser[s.UserID] = s.Weight
		}
		assert.EqualValues(t, 3, byUser[userA])
		assert.EqualValues(t, 1, byUser[userB])
	})

	t.Run("rejects before persisting", func(t *testing.T) {
		tests := []struct {
			name    string
			req     AddExpenseRequest
			wantErr error
		}{
			{
				name:    "zero amount",
				req:     AddExpenseRequest{Amount: 0, Participants: []uuid.UUID{userA}},
				wantErr: domain.ErrInvalidAmount,
			},
			{
				name:    "no participants",
				req:     AddExpenseRequest{Amount: 100},
				wantErr: domain.ErrNoParticipants,
			},
			{
				name: "weight for non-participant",
				req: AddExpenseRequest{
					Amount:       100,
					Participants: []uuid.UUID{userA},
					Weights:      map[uuid.UUID]int64{userA: 1, userB: 1},
				},
				wantErr: domain.ErrUnknownShareParticipant,
			},
			{
				name: "duplicate participant",
				req: AddExpenseRequest{
					Amount:       100,
					Participants: []uuid.UUID{userA, userA},
				},
				wantErr: domain.ErrDuplicateParticipant,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.validateSplit(tt.req)
				require.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}
