package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

// maxVoteAttempts bounds how often a unit of work is re-run after losing an
// insert race against the same voter.
const maxVoteAttempts = 3

type voteService struct {
	voteRepo ports.VoteRepository
	logger   *slog.Logger
}

func NewVoteService(voteRepo ports.VoteRepository, logger *slog.Logger) ports.VoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &voteService{
		voteRepo: voteRepo,
		logger:   logger,
	}
}

func (s *voteService) ApplyVote(ctx context.Context, input ports.VoteInput) (*ports.VoteResult, error) {
	value, err := domain.ParseVoteValue(input.Value)
	if err != nil {
		return nil, err
	}
	if input.UserID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.ItemID == uuid.Nil {
		return nil, domain.ErrInvalidItemID
	}

	for attempt := 1; ; attempt++ {
		result, err := s.apply(ctx, input.UserID, input.ItemID, value)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrVoteConflict) || attempt == maxVoteAttempts {
			return nil, err
		}
		s.logger.Warn("vote raced with a concurrent insert, retrying",
			"item_id", input.ItemID,
			"user_id", input.UserID,
			"attempt", attempt,
		)
	}
}

func (s *voteService) apply(ctx context.Context, userID, itemID uuid.UUID, value domain.VoteValue) (*ports.VoteResult, error) {
	var (
		result     ports.VoteResult
		transition domain.VoteTransition
	)

	err := s.voteRepo.WithinTx(ctx, func(tx ports.VoteTx) error {
		existing, err := tx.CurrentVote(ctx, userID, itemID)
		if err != nil {
			return err
		}

		transition = domain.ResolveVote(existing, value)
		switch transition.Action {
		case domain.VoteActionInsert:
			err = tx.InsertVote(ctx, userID, itemID, value)
		case domain.VoteActionUpdate:
			err = tx.UpdateVote(ctx, userID, itemID, value)
		case domain.VoteActionDelete:
			err = tx.DeleteVote(ctx, userID, itemID)
		}
		if err != nil {
			return err
		}

		score, err := tx.AdjustScore(ctx, itemID, transition.Delta)
		if err != nil {
			return err
		}

		result = ports.VoteResult{ItemID: itemID, Vote: transition.Result, Score: score}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply vote: %w", err)
	}

	s.logger.Info("vote applied",
		"item_id", itemID,
		"user_id", userID,
		"action", transition.Action,
		"delta", transition.Delta,
		"score", result.Score,
	)

	return &result, nil
}

func (s *voteService) MyVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error) {
	if userID == uuid.Nil {
		return domain.VoteNone, domain.ErrUnauthenticated
	}

	state, err := s.voteRepo.GetVote(ctx, userID, itemID)
	if err != nil {
		return domain.VoteNone, fmt.Errorf("failed to get vote: %w", err)
	}
	return state, nil
}
