package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

type NewsHandler struct {
	service ports.NewsService
}

func NewNewsHandler(service ports.NewsService) *NewsHandler {
	return &NewsHandler{
		service: service,
	}
}

type createNewsRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required,max=20000"`
}

// CreateNews godoc
// @Summary      Publishes a news post
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        body  body      createNewsRequest  true  "Post content"
// @Success      201   {object}  domain.NewsPost
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/news [post]
func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}

	var req createNewsRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.service.Create(r.Context(), ports.CreateNewsInput{
		AuthorID: userID,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// ListNews godoc
// @Summary      Lists news posts by score
// @Description  Ten posts per page, highest score first. `q` filters by title.
// @Tags         news
// @Produce      json
// @Param        page  query     int     false  "Page number, from 1"
// @Param        q     query     string  false  "Title search"
// @Success      200   {array}   domain.NewsPost
// @Router       /api/news [get]
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	posts, err := h.service.ListPosts(r.Context(), ports.ListNewsInput{
		Page:  page,
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// GetNews godoc
// @Summary      Returns one news post
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "News post ID"
// @Success      200  {object}  domain.NewsPost
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/news/{id} [get]
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
