package cli

import (
	"context"
	"fmt"
	"strconv"

	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/services"
)

// SettingsCmd shows settings, or updates the ones given as flags.
type SettingsCmd struct {
	CardsPerDay   int    `help:"Cards shown per study session." name:"cards-per-day" default:"0"`
	Notifications string `help:"Turn notifications on or off." enum:",on,off" default:""`
	DarkMode      string `help:"Turn dark mode on or off." name:"dark-mode" enum:",on,off" default:""`
}

func (c *SettingsCmd) update() (services.SettingsUpdate, bool) {
	var in services.SettingsUpdate
	changed := false
	if c.CardsPerDay != 0 {
		n := c.CardsPerDay
		in.CardsPerDay = &n
		changed = true
	}
	if c.Notifications != "" {
		on := c.Notifications == "on"
		in.NotificationsEnabled = &on
		changed = true
	}
	if c.DarkMode != "" {
		on := c.DarkMode == "on"
		in.DarkMode = &on
		changed = true
	}
	return in, changed
}

func (c *SettingsCmd) Run(ctx *Context) error {
	var (
		s   *types.Settings
		err error
	)
	if in, changed := c.update(); changed {
		s, err = ctx.Services.Settings.Update(context.Background(), in)
	} else {
		s, err = ctx.Services.Settings.Get(context.Background())
	}
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	ctx.renderTable([]string{"Setting", "Value"}, [][]string{
		{"cards_per_day", strconv.Itoa(s.CardsPerDay)},
		{"notifications_enabled", strconv.FormatBool(s.NotificationsEnabled)},
		{"dark_mode", strconv.FormatBool(s.DarkMode)},
	})
	return nil
}
