package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/repeat-backend/internal/http/response"
	"github.com/yungbote/repeat-backend/internal/services"
)

type CardHandler struct {
	cards   services.CardService
	reviews services.ReviewService
}

func NewCardHandler(cards services.CardService, reviews services.ReviewService) *CardHandler {
	return &CardHandler{cards: cards, reviews: reviews}
}

type createCardRequest struct {
	DeckID string `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

type updateCardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type reviewRequest struct {
	Quality  *int            `json:"quality"`
	Metadata json.RawMessage `json:"metadata"`
}

// POST /api/cards
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	deckID, err := uuid.Parse(req.DeckID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_deck_id", err)
		return
	}
	card, err := h.cards.Create(c.Request.Context(), deckID, req.Front, req.Back)
	if err != nil {
		response.RespondServiceError(c, "create_card_failed", err)
		return
	}
	response.RespondCreated(c, card)
}

// GET /api/cards/:id
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "invalid_card_id")
	if !ok {
		return
	}
	card, err := h.cards.Get(c.Request.Context(), cardID)
	if err != nil {
		response.RespondServiceError(c, "get_card_failed", err)
		return
	}
	response.RespondOK(c, card)
}

// PUT /api/cards/:id
func (h *CardHandler) UpdateCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "invalid_card_id")
	if !ok {
		return
	}
	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	card, err := h.cards.Update(c.Request.Context(), cardID, req.Front, req.Back)
	if err != nil {
		response.RespondServiceError(c, "update_card_failed", err)
		return
	}
	response.RespondOK(c, card)
}

// DELETE /api/cards/:id
func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "invalid_card_id")
	if !ok {
		return
	}
	if err := h.cards.Delete(c.Request.Context(), cardID); err != nil {
		response.RespondServiceError(c, "delete_card_failed", err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/cards/:id/review
func (h *CardHandler) ReviewCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "invalid_card_id")
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Quality == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quality", errors.New("quality is required"))
		return
	}
	res, err := h.reviews.Review(c.Request.Context(), cardID, *req.Quality, req.Metadata)
	if err != nil {
		response.RespondServiceError(c, "review_failed", err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/cards/:id/reviews?limit=
func (h *CardHandler) ListReviews(c *gin.Context) {
	cardID, ok := parseIDParam(c, "invalid_card_id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	reviews, err := h.reviews.History(c.Request.Context(), cardID, limit)
	if err != nil {
		response.RespondServiceError(c, "list_reviews_failed", err)
		return
	}
	response.RespondOK(c, reviews)
}
