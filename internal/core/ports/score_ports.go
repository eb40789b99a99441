package ports

import (
	"context"

	"github.com/risinghub/hub/internal/core/domain"
)

type ScoreService interface {
	Audit(ctx context.Context, repair bool) ([]domain.ScoreDrift, error)
}
