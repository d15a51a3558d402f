package cli

import (
	"context"
	"fmt"
	"strconv"

	types "github.com/yungbote/repeat-backend/internal/domain"
)

type CardAddCmd struct {
	Deck  string `arg:"" help:"Deck ID."`
	Front string `arg:"" help:"Front (question) side."`
	Back  string `arg:"" help:"Back (answer) side."`
}

func (c *CardAddCmd) Run(ctx *Context) error {
	deckID, err := parseID("deck", c.Deck)
	if err != nil {
		return err
	}
	card, err := ctx.Services.Card.Create(context.Background(), deckID, c.Front, c.Back)
	if err != nil {
		return fmt.Errorf("add card: %w", err)
	}
	ctx.printf("%s card %s\n", okStyle.Render("added"), card.ID)
	return nil
}

type CardListCmd struct {
	Deck string `arg:"" help:"Deck ID."`
}

func (c *CardListCmd) Run(ctx *Context) error {
	deckID, err := parseID("deck", c.Deck)
	if err != nil {
		return err
	}
	cards, err := ctx.Services.Card.ListByDeck(context.Background(), deckID)
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}
	ctx.renderCards(cards)
	return nil
}

type DueCmd struct {
	Deck  string `arg:"" help:"Deck ID."`
	Limit int    `help:"Maximum cards to show; 0 uses the cards-per-day setting." default:"0"`
}

func (c *DueCmd) Run(ctx *Context) error {
	deckID, err := parseID("deck", c.Deck)
	if err != nil {
		return err
	}
	cards, err := ctx.Services.Card.ListDue(context.Background(), deckID, c.Limit)
	if err != nil {
		return fmt.Errorf("list due cards: %w", err)
	}
	ctx.renderCards(cards)
	return nil
}

func (c *Context) renderCards(cards []*types.Card) {
	rows := make([][]string, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, []string{
			card.ID.String(),
			truncate(card.Front, 40),
			truncate(card.Back, 40),
			strconv.Itoa(card.IntervalDays),
			strconv.FormatFloat(card.EaseFactor, 'f', 2, 64),
			formatNext(card.NextReview),
		})
	}
	c.renderTable([]string{"ID", "Front", "Back", "Interval", "Ease", "Next"}, rows)
}
