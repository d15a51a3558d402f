package cli

import (
	"context"
	"fmt"
	"strconv"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	stats, err := ctx.Services.Statistics.Get(context.Background())
	if err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	ctx.printf("Total cards:   %d\n", stats.TotalCards)
	ctx.printf("Cards learned: %d\n", stats.CardsLearned)
	ctx.printf("Accuracy (7d): %.1f%%\n", stats.AverageAccuracy)
	rows := make([][]string, 0, len(stats.DailyStats))
	for _, d := range stats.DailyStats {
		rows = append(rows, []string{d.Date, strconv.Itoa(d.CardsReviewed)})
	}
	ctx.renderTable([]string{"Date", "Reviewed"}, rows)
	return nil
}
