package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

var (
	testUserID = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	testItemID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
)

const testToken = "valid-token"

type fakeAuthService struct {
	refreshErr   error
	loggedOut    []string
	loginErr     error
	loginTokens  [2]string
	lastGoogleID string
}

func (f *fakeAuthService) LoginWithGoogle(ctx context.Context, googleToken string) (string, string, error) {
	f.lastGoogleID = googleToken
	if f.loginErr != nil {
		return "", "", f.loginErr
	}
	return f.loginTokens[0], f.loginTokens[1], nil
}

func (f *fakeAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	if f.refreshErr != nil {
		return "", "", f.refreshErr
	}
	return "new-access", refreshToken, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

func (f *fakeAuthService) ParseAccessToken(token string) (uuid.UUID, error) {
	if token != testToken {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return testUserID, nil
}

type fakeVoteService struct {
	applyFn func(input ports.VoteInput) (*ports.VoteResult, error)
	state   domain.VoteState
	calls   int
}

func (f *fakeVoteService) ApplyVote(ctx context.Context, input ports.VoteInput) (*ports.VoteResult, error) {
	f.calls++
	return f.applyFn(input)
}

func (f *fakeVoteService) MyVote(ctx context.Context, userID, itemID uuid.UUID) (domain.VoteState, error) {
	return f.state, nil
}

type fakeNewsService struct {
	posts   map[uuid.UUID]*domain.NewsPost
	created []ports.CreateNewsInput
	listed  []ports.ListNewsInput
}

func (f *fakeNewsService) Create(ctx context.Context, input ports.CreateNewsInput) (*domain.NewsPost, error) {
	f.created = append(f.created, input)
	return &domain.NewsPost{ID: testItemID, AuthorID: input.AuthorID, Title: input.Title, Body: input.Body}, nil
}

func (f *fakeNewsService) GetPost(ctx context.Context, id string) (*domain.NewsPost, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidItemID
	}
	post, ok := f.posts[postID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return post, nil
}

func (f *fakeNewsService) ListPosts(ctx context.Context, input ports.ListNewsInput) ([]*domain.NewsPost, error) {
	f.listed = append(f.listed, input)
	posts := []*domain.NewsPost{}
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

type fakeUserService struct {
	user *domain.User
}

func (f *fakeUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return f.user, nil
}

type testServer struct {
	auth  *fakeAuthService
	votes *fakeVoteService
	news  *fakeNewsService
	users *fakeUserService
}

func newTestServer() *testServer {
	return &testServer{
		auth:  &fakeAuthService{},
		votes: &fakeVoteService{},
		news:  &fakeNewsService{posts: map[uuid.UUID]*domain.NewsPost{}},
		users: &fakeUserService{},
	}
}

func (s *testServer) handler() http.Handler {
	return NewHandler(Handlers{
		Auth: NewAuthHandler(s.auth, "https://hub.example/", "", http.SameSiteLaxMode),
		User: NewUserHandler(s.users),
		News: NewNewsHandler(s.news),
		Vote: NewVoteHandler(s.votes),
	}, RouterConfig{
		AuthService: s.auth,
		CORSOrigins: []string{"https://hub.example"},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *testServer) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: testToken})
	}
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)
	return rec
}

func serve(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)
	return rec
}
