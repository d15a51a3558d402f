package cli

import (
	"context"
	"fmt"
	"strconv"
)

type DeckListCmd struct{}

func (c *DeckListCmd) Run(ctx *Context) error {
	decks, err := ctx.Services.Deck.List(context.Background())
	if err != nil {
		return fmt.Errorf("list decks: %w", err)
	}
	rows := make([][]string, 0, len(decks))
	for _, d := range decks {
		rows = append(rows, []string{d.ID.String(), d.Name, strconv.FormatInt(d.CardCount, 10), strconv.FormatInt(d.DueCards, 10)})
	}
	ctx.renderTable([]string{"ID", "Name", "Cards", "Due"}, rows)
	return nil
}

type DeckCreateCmd struct {
	Name string `arg:"" help:"Deck name."`
}

func (c *DeckCreateCmd) Run(ctx *Context) error {
	deck, err := ctx.Services.Deck.Create(context.Background(), c.Name)
	if err != nil {
		return fmt.Errorf("create deck: %w", err)
	}
	ctx.printf("%s deck %q (%s)\n", okStyle.Render("created"), deck.Name, deck.ID)
	return nil
}

type DeckDeleteCmd struct {
	ID string `arg:"" help:"Deck ID."`
}

func (c *DeckDeleteCmd) Run(ctx *Context) error {
	id, err := parseID("deck", c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Services.Deck.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	ctx.printf("%s deck %s\n", okStyle.Render("deleted"), id)
	return nil
}
