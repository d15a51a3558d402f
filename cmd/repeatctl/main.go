package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/yungbote/repeat-backend/internal/app"
	"github.com/yungbote/repeat-backend/internal/cli"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"SQLite database path; overrides SQLITE_PATH." name:"db" type:"path"`

	Deck struct {
		List   cli.DeckListCmd   `cmd:"" help:"List decks with card counts." default:"1"`
		Create cli.DeckCreateCmd `cmd:"" help:"Create a deck."`
		Delete cli.DeckDeleteCmd `cmd:"" help:"Delete a deck and its cards."`
	} `cmd:"" help:"Manage decks."`
	Card struct {
		Add  cli.CardAddCmd  `cmd:"" help:"Add a card to a deck."`
		List cli.CardListCmd `cmd:"" help:"List the cards of a deck."`
	} `cmd:"" help:"Manage cards."`
	Due      cli.DueCmd      `cmd:"" help:"Show cards due for review."`
	Review   cli.ReviewCmd   `cmd:"" help:"Record a review for a card."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show study statistics."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("repeatctl"),
		kong.Description("Spaced repetition flashcards from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.SQLitePath = CLI.DB
	}

	// The CLI stays quiet unless LOG_MODE asks otherwise.
	log := logger.Nop()
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		if l, err := logger.New(mode); err == nil {
			log = l
		}
	}

	core, err := app.NewCore(context.Background(), log, cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = kctx.Run(&cli.Context{Services: core.Services, Out: os.Stdout})
	core.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
