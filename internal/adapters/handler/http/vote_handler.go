package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/risinghub/hub/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Value *int `json:"value" validate:"required,oneof=1 -1"`
}

type myVoteResponse struct {
	ItemID uuid.UUID        `json:"item_id"`
	Vote   domain.VoteState `json:"vote"`
}

// Vote godoc
// @Summary      Casts or changes a vote on a news post
// @Description  Sending the current vote again withdraws it; sending the opposite value flips it. `vote` in the response is 1, -1 or 0 for no vote.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "News post ID"
// @Param        body  body      voteRequest  true  "Vote value, 1 or -1"
// @Success      200   {object}  ports.VoteResult
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/news/{id}/vote [post]
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidItemID.Error())
		return
	}

	var req voteRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.service.ApplyVote(r.Context(), ports.VoteInput{
		UserID: userID,
		ItemID: itemID,
		Value:  *req.Value,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// MyVote godoc
// @Summary      Returns the caller's vote on a news post
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "News post ID"
// @Success      200  {object}  myVoteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/news/{id}/my-vote [get]
func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidItemID.Error())
		return
	}

	state, err := h.service.MyVote(r.Context(), userID, itemID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, myVoteResponse{ItemID: itemID, Vote: state})
}
