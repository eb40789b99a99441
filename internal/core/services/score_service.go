package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

const auditConcurrency = 8

type scoreService struct {
	newsRepo ports.NewsRepository
	voteRepo ports.VoteRepository
	logger   *slog.Logger
}

func NewScoreService(newsRepo ports.NewsRepository, voteRepo ports.VoteRepository, logger *slog.Logger) ports.ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scoreService{
		newsRepo: newsRepo,
		voteRepo: voteRepo,
		logger:   logger,
	}
}

// Audit compares every post's stored score with the sum of its votes. With
// repair set, the difference is applied as a delta in the same unit of work
// that measured it.
func (s *scoreService) Audit(ctx context.Context, repair bool) ([]domain.ScoreDrift, error) {
	ids, err := s.newsRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news post ids: %w", err)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		drifts []domain.ScoreDrift
	)
	errChan := make(chan error, len(ids))
	sem := make(chan struct{}, auditConcurrency)

	for _, id := range ids {
		wg.Add(1)
		go func(itemID uuid.UUID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			drift, err := s.auditItem(ctx, itemID, repair)
			if err != nil {
				errChan <- fmt.Errorf("failed to audit news post %s: %w", itemID, err)
				return
			}
			if drift != nil {
				mu.Lock()
				drifts = append(drifts, *drift)
				mu.Unlock()
			}
		}(id)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(drifts, func(i, j int) bool {
		return drifts[i].ItemID.String() < drifts[j].ItemID.String()
	})
	return drifts, nil
}

func (s *scoreService) auditItem(ctx context.Context, itemID uuid.UUID, repair bool) (*domain.ScoreDrift, error) {
	var drift *domain.ScoreDrift

	err := s.voteRepo.WithinTx(ctx, func(tx ports.VoteTx) error {
		stored, computed, err := tx.ScoreSnapshot(ctx, itemID)
		if err != nil {
			return err
		}
		if stored == computed {
			return nil
		}

		drift = &domain.ScoreDrift{ItemID: itemID, Stored: stored, Computed: computed}
		if !repair {
			return nil
		}
		if _, err := tx.AdjustScore(ctx, itemID, drift.Delta()); err != nil {
			return err
		}
		drift.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if drift != nil {
		s.logger.Warn("score drift detected",
			"item_id", itemID,
			"stored", drift.Stored,
			"computed", drift.Computed,
			"repaired", drift.Repaired,
		)
	}
	return drift, nil
}
