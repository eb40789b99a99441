package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVoteValue(t *testing.T) {
	for _, v := range []int{1, -1} {
		got, err := ParseVoteValue(v)
		require.NoError(t, err)
		assert.Equal(t, VoteValue(v), got)
	}

	for _, v := range []int{0, 2, -2, 100} {
		_, err := ParseVoteValue(v)
		assert.ErrorIs(t, err, ErrInvalidVoteValue, "value %d", v)
	}
}

func TestResolveVote(t *testing.T) {
	tests := []struct {
		name      string
		existing  VoteState
		requested VoteValue
		want      VoteTransition
	}{
		{"first upvote", VoteNone, Upvote, VoteTransition{VoteActionInsert, 1, VoteUp}},
		{"first downvote", VoteNone, Downvote, VoteTransition{VoteActionInsert, -1, VoteDown}},
		{"toggle off upvote", VoteUp, Upvote, VoteTransition{VoteActionDelete, -1, VoteNone}},
		{"toggle off downvote", VoteDown, Downvote, VoteTransition{VoteActionDelete, 1, VoteNone}},
		{"flip up to down", VoteUp, Downvote, VoteTransition{VoteActionUpdate, -2, VoteDown}},
		{"flip down to up", VoteDown, Upvote, VoteTransition{VoteActionUpdate, 2, VoteUp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveVote(tt.existing, tt.requested))
		})
	}
}

// Replaying any sequence through ResolveVote must keep the running score equal
// to the value of the single voter's current stance.
func TestResolveVote_SequenceKeepsScoreInSync(t *testing.T) {
	sequence := []VoteValue{Upvote, Upvote, Downvote, Downvote, Upvote, Downvote, Upvote}

	state := VoteNone
	var score int64
	for i, v := range sequence {
		tr := ResolveVote(state, v)
		score += tr.Delta
		state = tr.Result
		assert.Equal(t, int64(state), score, "step %d", i)
	}
}

func TestScoreDrift_Delta(t *testing.T) {
	d := ScoreDrift{Stored: 5, Computed: 2}
	assert.Equal(t, int64(-3), d.Delta())
}

func TestVoteState_String(t *testing.T) {
	assert.Equal(t, "up", VoteUp.String())
	assert.Equal(t, "down", VoteDown.String())
	assert.Equal(t, "none", VoteNone.String())
}
