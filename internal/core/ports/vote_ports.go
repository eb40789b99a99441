package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
)

// VoteTx is the set of ledger writes available inside one unit of work. All
// calls made through a VoteTx commit or roll back together.
type VoteTx interface {
	// CurrentVote returns the voter's stance, locking the row where the
	// driver supports it.
	CurrentVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error)
	InsertVote(ctx context.Context, userID, itemID uuid.UUID, value domain.VoteValue) error
	UpdateVote(ctx context.Context, userID, itemID uuid.UUID, value domain.VoteValue) error
	DeleteVote(ctx context.Context, userID, itemID uuid.UUID) error
	// AdjustScore adds delta to the item's score and returns the new score.
	AdjustScore(ctx context.Context, itemID uuid.UUID, delta int64) (int64, error)
	// ScoreSnapshot returns the stored score and the sum of the item's votes.
	ScoreSnapshot(ctx context.Context, itemID uuid.UUID) (stored int64, computed int64, err error)
}

type VoteRepository interface {
	WithinTx(ctx context.Context, fn func(tx VoteTx) error) error
	GetVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error)
}

type VoteInput struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	Value  int
}

type VoteResult struct {
	ItemID uuid.UUID        `json:"item_id"`
	Vote   domain.VoteState `json:"vote"`
	Score  int64            `json:"score"`
}

type VoteService interface {
	ApplyVote(ctx context.Context, input VoteInput) (*VoteResult, error)
	MyVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error)
}
