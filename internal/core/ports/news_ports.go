package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
)

type NewsRepository interface {
	Save(ctx context.Context, post *domain.NewsPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsPost, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	List(ctx context.Context, limit, offset int) ([]*domain.NewsPost, error)
	Search(ctx context.Context, limit, offset int, query string) ([]*domain.NewsPost, error)
}

type CreateNewsInput struct {
	AuthorID uuid.UUID
	Title    string
	Body     string
}

type ListNewsInput struct {
	Page  int
	Query string
}

type NewsService interface {
	Create(ctx context.Context, input CreateNewsInput) (*domain.NewsPost, error)
	GetPost(ctx context.Context, id string) (*domain.NewsPost, error)
	ListPosts(ctx context.Context, input ListNewsInput) ([]*domain.NewsPost, error)
}
