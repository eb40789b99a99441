package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteValue is the polarity a voter asks for.
type VoteValue int

const (
	Upvote   VoteValue = 1
	Downvote VoteValue = -1
)

// ParseVoteValue accepts exactly 1 and -1.
func ParseVoteValue(v int) (VoteValue, error) {
	switch VoteValue(v) {
	case Upvote, Downvote:
		return VoteValue(v), nil
	default:
		return 0, ErrInvalidVoteValue
	}
}

// VoteState is a voter's current stance on an item. VoteNone means no row.
type VoteState int

const (
	VoteNone VoteState = 0
	VoteUp   VoteState = 1
	VoteDown VoteState = -1
)

func (s VoteState) String() string {
	switch s {
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	default:
		return "none"
	}
}

type Vote struct {
	UserID    uuid.UUID `json:"user_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Value     VoteValue `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VoteAction string

const (
	VoteActionInsert VoteAction = "insert"
	VoteActionUpdate VoteAction = "update"
	VoteActionDelete VoteAction = "delete"
)

// VoteTransition describes what must happen to the vote row and by how much
// the item's score moves.
type VoteTransition struct {
	Action VoteAction
	Delta  int64
	Result VoteState
}

// ResolveVote decides the transition for a requested value given the voter's
// existing stance. Repeating the same value removes the vote, the opposite
// value flips it.
func ResolveVote(existing VoteState, requested VoteValue) VoteTransition {
	switch existing {
	case VoteNone:
		return VoteTransition{Action: VoteActionInsert, Delta: int64(requested), Result: VoteState(requested)}
	case VoteState(requested):
		return VoteTransition{Action: VoteActionDelete, Delta: -int64(requested), Result: VoteNone}
	default:
		return VoteTransition{Action: VoteActionUpdate, Delta: 2 * int64(requested), Result: VoteState(requested)}
	}
}

// ScoreDrift reports an item whose stored score disagrees with its votes.
type ScoreDrift struct {
	ItemID   uuid.UUID `json:"item_id"`
	Stored   int64     `json:"stored"`
	Computed int64     `json:"computed"`
	Repaired bool      `json:"repaired"`
}

func (d ScoreDrift) Delta() int64 {
	return d.Computed - d.Stored
}
