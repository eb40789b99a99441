package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNewsRepo struct {
	saved      []*domain.NewsPost
	ids        []uuid.UUID
	lastLimit  int
	lastOffset int
	lastQuery  string
}

func (r *fakeNewsRepo) Save(ctx context.Context, post *domain.NewsPost) error {
	r.saved = append(r.saved, post)
	return nil
}

func (r *fakeNewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsPost, error) {
	for _, p := range r.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *fakeNewsRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return r.ids, nil
}

func (r *fakeNewsRepo) List(ctx context.Context, limit, offset int) ([]*domain.NewsPost, error) {
	r.lastLimit, r.lastOffset, r.lastQuery = limit, offset, ""
	return r.saved, nil
}

func (r *fakeNewsRepo) Search(ctx context.Context, limit, offset int, query string) ([]*domain.NewsPost, error) {
	r.lastLimit, r.lastOffset, r.lastQuery = limit, offset, query
	return nil, nil
}

func TestNewsService_Create(t *testing.T) {
	repo := &fakeNewsRepo{}
	svc := NewNewsService(repo)
	author := uuid.New()

	post, err := svc.Create(context.Background(), ports.CreateNewsInput{AuthorID: author, Title: "  Episode: Echoes ", Body: "Story mission"})
	require.NoError(t, err)
	assert.Equal(t, "Episode: Echoes", post.Title)
	assert.Equal(t, author, post.AuthorID)
	assert.Equal(t, int64(0), post.Score)
	assert.NotEqual(t, uuid.Nil, post.ID)
	require.Len(t, repo.saved, 1)
}

func TestNewsService_CreateValidation(t *testing.T) {
	author := uuid.New()
	tests := []struct {
		name  string
		input ports.CreateNewsInput
		field string
	}{
		{"blank title", ports.CreateNewsInput{AuthorID: author, Title: "   ", Body: "b"}, "title"},
		{"long title", ports.CreateNewsInput{AuthorID: author, Title: strings.Repeat("é", 201), Body: "b"}, "title"},
		{"blank body", ports.CreateNewsInput{AuthorID: author, Title: "t"}, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeNewsRepo{}
			_, err := NewNewsService(repo).Create(context.Background(), tt.input)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Empty(t, repo.saved)
		})
	}

	_, err := NewNewsService(&fakeNewsRepo{}).Create(context.Background(), ports.CreateNewsInput{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestNewsService_GetPost(t *testing.T) {
	svc := NewNewsService(&fakeNewsRepo{})

	_, err := svc.GetPost(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidItemID)

	_, err = svc.GetPost(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestNewsService_ListPostsPaging(t *testing.T) {
	repo := &fakeNewsRepo{}
	svc := NewNewsService(repo)

	_, err := svc.ListPosts(context.Background(), ports.ListNewsInput{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, newsPageSize, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)

	_, err = svc.ListPosts(context.Background(), ports.ListNewsInput{Page: 3, Query: " raid "})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastOffset)
	assert.Equal(t, "raid", repo.lastQuery)
}
