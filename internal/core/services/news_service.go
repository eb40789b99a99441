package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

const (
	newsPageSize    = 10
	maxNewsTitleLen = 200
	maxNewsBodyLen  = 20000
)

type newsService struct {
	repo ports.NewsRepository
}

func NewNewsService(repo ports.NewsRepository) ports.NewsService {
	return &newsService{
		repo: repo,
	}
}

func (s *newsService) Create(ctx context.Context, input ports.CreateNewsInput) (*domain.NewsPost, error) {
	if input.AuthorID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > maxNewsTitleLen {
		return nil, &domain.ValidationError{Field: "title", Message: "is too long"}
	}
	if body == "" {
		return nil, &domain.ValidationError{Field: "body", Message: "is required"}
	}
	if utf8.RuneCountInString(body) > maxNewsBodyLen {
		return nil, &domain.ValidationError{Field: "body", Message: "is too long"}
	}

	post := &domain.NewsPost{
		ID:        uuid.New(),
		AuthorID:  input.AuthorID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *newsService) GetPost(ctx context.Context, id string) (*domain.NewsPost, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidItemID
	}

	return s.repo.GetByID(ctx, postID)
}

func (s *newsService) ListPosts(ctx context.Context, input ports.ListNewsInput) ([]*domain.NewsPost, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * newsPageSize

	if q := strings.TrimSpace(input.Query); q != "" {
		return s.repo.Search(ctx, newsPageSize, offset, q)
	}
	return s.repo.List(ctx, newsPageSize, offset)
}
