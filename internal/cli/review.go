package cli

import (
	"context"
	"fmt"
)

type ReviewCmd struct {
	Card    string `arg:"" help:"Card ID."`
	Quality int    `arg:"" help:"Recall quality, 0 (blackout) to 5 (perfect)."`
}

func (c *ReviewCmd) Run(ctx *Context) error {
	cardID, err := parseID("card", c.Card)
	if err != nil {
		return err
	}
	res, err := ctx.Services.Review.Review(context.Background(), cardID, c.Quality, nil)
	if err != nil {
		return fmt.Errorf("review card: %w", err)
	}
	outcome := okStyle.Render("passed")
	if res.Card.IntervalDays == 0 {
		outcome = failStyle.Render("failed")
	}
	ctx.printf("%s: interval %d day(s), ease %.2f, next %s\n",
		outcome, res.Card.IntervalDays, res.Card.EaseFactor, formatNext(res.Card.NextReview))
	return nil
}
