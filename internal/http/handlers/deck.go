package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/repeat-backend/internal/http/response"
	"github.com/yungbote/repeat-backend/internal/services"
)

type DeckHandler struct {
	decks services.DeckService
	cards services.CardService
}

func NewDeckHandler(decks services.DeckService, cards services.CardService) *DeckHandler {
	return &DeckHandler{decks: decks, cards: cards}
}

type createDeckRequest struct {
	Name string `json:"name"`
}

// GET /api/decks
func (h *DeckHandler) ListDecks(c *gin.Context) {
	decks, err := h.decks.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_decks_failed", err)
		return
	}
	response.RespondOK(c, decks)
}

// POST /api/decks
func (h *DeckHandler) CreateDeck(c *gin.Context) {
	var req createDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	deck, err := h.decks.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondServiceError(c, "create_deck_failed", err)
		return
	}
	response.RespondCreated(c, deck)
}

// GET /api/decks/:id
func (h *DeckHandler) GetDeck(c *gin.Context) {
	deckID, ok := parseIDParam(c, "invalid_deck_id")
	if !ok {
		return
	}
	deck, err := h.decks.Get(c.Request.Context(), deckID)
	if err != nil {
		response.RespondServiceError(c, "get_deck_failed", err)
		return
	}
	response.RespondOK(c, deck)
}

// DELETE /api/decks/:id
func (h *DeckHandler) DeleteDeck(c *gin.Context) {
	deckID, ok := parseIDParam(c, "invalid_deck_id")
	if !ok {
		return
	}
	if err := h.decks.Delete(c.Request.Context(), deckID); err != nil {
		response.RespondServiceError(c, "delete_deck_failed", err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/decks/:id/cards
func (h *DeckHandler) ListDeckCards(c *gin.Context) {
	deckID, ok := parseIDParam(c, "invalid_deck_id")
	if !ok {
		return
	}
	cards, err := h.cards.ListByDeck(c.Request.Context(), deckID)
	if err != nil {
		response.RespondServiceError(c, "list_cards_failed", err)
		return
	}
	response.RespondOK(c, cards)
}

// GET /api/decks/:id/due_cards?limit=
func (h *DeckHandler) ListDueCards(c *gin.Context) {
	deckID, ok := parseIDParam(c, "invalid_deck_id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	cards, err := h.cards.ListDue(c.Request.Context(), deckID, limit)
	if err != nil {
		response.RespondServiceError(c, "list_due_cards_failed", err)
		return
	}
	response.RespondOK(c, cards)
}
