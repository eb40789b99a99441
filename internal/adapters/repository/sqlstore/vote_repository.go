package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

const voteUserConstraint = "news_votes_user_fk"

type voteRepository struct {
	db     *sql.DB
	driver Driver
}

func NewVoteRepository(store *Store) ports.VoteRepository {
	return &voteRepository{
		db:     store.db,
		driver: store.driver,
	}
}

// WithinTx runs fn inside one database transaction. fn's writes are committed
// only if it returns nil.
func (r *voteRepository) WithinTx(ctx context.Context, fn func(tx ports.VoteTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&voteTx{tx: tx, driver: r.driver}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVoteConflict
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *voteRepository) GetVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error) {
	return currentVote(ctx, r.db, "", userID, itemID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func currentVote(ctx context.Context, q queryRower, lock string, userID, itemID uuid.UUID) (domain.VoteState, error) {
	query := `SELECT value FROM news_votes WHERE user_id = $1 AND item_id = $2` + lock
	var value int
	err := q.QueryRowContext(ctx, query, userID, itemID).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VoteNone, nil
		}
		return domain.VoteNone, fmt.Errorf("failed to get vote: %w", err)
	}
	return domain.VoteState(value), nil
}

type voteTx struct {
	tx     *sql.Tx
	driver Driver
}

func (t *voteTx) CurrentVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error) {
	return currentVote(ctx, t.tx, t.driver.rowLock(), userID, itemID)
}

func (t *voteTx) InsertVote(ctx context.Context, userID, itemID uuid.UUID, value domain.VoteValue) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO news_votes (user_id, item_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := t.tx.ExecContext(ctx, query, userID, itemID, int(value), now, now)
	if err != nil {
		return classifyVoteError("failed to insert vote", err)
	}
	return nil
}

func (t *voteTx) UpdateVote(ctx context.Context, userID, itemID uuid.UUID, value domain.VoteValue) error {
	query := `UPDATE news_votes SET value = $1, updated_at = $2 WHERE user_id = $3 AND item_id = $4`
	res, err := t.tx.ExecContext(ctx, query, int(value), time.Now().UTC(), userID, itemID)
	if err != nil {
		return classifyVoteError("failed to update vote", err)
	}
	return expectOneRow(res)
}

func (t *voteTx) DeleteVote(ctx context.Context, userID, itemID uuid.UUID) error {
	query := `DELETE FROM news_votes WHERE user_id = $1 AND item_id = $2`
	res, err := t.tx.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return classifyVoteError("failed to delete vote", err)
	}
	return expectOneRow(res)
}

func (t *voteTx) AdjustScore(ctx context.Context, itemID uuid.UUID, delta int64) (int64, error) {
	query := `UPDATE news_posts SET score = score + $1 WHERE id = $2 RETURNING score`
	var score int64
	err := t.tx.QueryRowContext(ctx, query, delta, itemID).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrItemNotFound
		}
		return 0, fmt.Errorf("failed to adjust score: %w", err)
	}
	return score, nil
}

// ScoreSnapshot locks the post row before summing its votes so a concurrent
// vote cannot land between the two reads.
func (t *voteTx) ScoreSnapshot(ctx context.Context, itemID uuid.UUID) (int64, int64, error) {
	var stored int64
	err := t.tx.QueryRowContext(ctx, `SELECT score FROM news_posts WHERE id = $1`+t.driver.rowLock(), itemID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, domain.ErrItemNotFound
		}
		return 0, 0, fmt.Errorf("failed to read score: %w", err)
	}

	var computed int64
	err = t.tx.QueryRowContext(ctx, `SELECT COALESCE(SUM(value), 0) FROM news_votes WHERE item_id = $1`, itemID).Scan(&computed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum votes: %w", err)
	}
	return stored, computed, nil
}

// expectOneRow reports a conflict when the row read earlier in the unit is no
// longer there.
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n != 1 {
		return domain.ErrVoteConflict
	}
	return nil
}

func classifyVoteError(msg string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrVoteConflict
	}
	if constraint, ok := foreignKeyViolation(err); ok {
		if constraint == voteUserConstraint {
			return domain.ErrUserNotFound
		}
		return domain.ErrItemNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
