package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

type newsRepository struct {
	db *sql.DB
}

func NewNewsRepository(store *Store) ports.NewsRepository {
	return &newsRepository{
		db: store.db,
	}
}

// Save inserts a new post. The score column keeps its default; only the vote
// ledger writes it afterwards.
func (r *newsRepository) Save(ctx context.Context, post *domain.NewsPost) error {
	query := `
		INSERT INTO news_posts (id, author_id, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, post.ID, post.AuthorID, post.Title, post.Body, post.CreatedAt)
	if err != nil {
		if _, ok := foreignKeyViolation(err); ok {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert news post: %w", err)
	}
	post.Score = 0
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsPost, error) {
	query := `
		SELECT id, author_id, title, body, score, created_at
		FROM news_posts
		WHERE id = $1
	`

	var post domain.NewsPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.Score, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get news post: %w", err)
	}
	return &post, nil
}

func (r *newsRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM news_posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list news post ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan news post id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news post ids: %w", err)
	}
	return ids, nil
}

func (r *newsRepository) List(ctx context.Context, limit, offset int) ([]*domain.NewsPost, error) {
	query := `
		SELECT id, author_id, title, body, score, created_at
		FROM news_posts
		ORDER BY score DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list news posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// Search matches q as a case-insensitive substring of the title.
func (r *newsRepository) Search(ctx context.Context, limit, offset int, q string) ([]*domain.NewsPost, error) {
	query := `
		SELECT id, author_id, title, body, score, created_at
		FROM news_posts
		WHERE LOWER(title) LIKE LOWER($1)
		ORDER BY score DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, "%"+q+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search news posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*domain.NewsPost, error) {
	posts := []*domain.NewsPost{}
	for rows.Next() {
		var post domain.NewsPost
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.Score, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news post: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news posts: %w", err)
	}
	return posts, nil
}
