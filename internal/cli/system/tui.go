package system

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/tui"
	"github.com/julianstephens/headcount/internal/tui/state"
)

type TuiCmd struct{}

// Options builds the TUI model options from ctx, loading the records.
func (c *TuiCmd) Options(ctx *cli.Context) (state.Options, error) {
	settings, err := ctx.Settings()
	if err != nil {
		return state.Options{}, err
	}
	loc, err := ctx.Location()
	if err != nil {
		return state.Options{}, err
	}
	b, err := ctx.Bridge()
	if err != nil {
		return state.Options{}, err
	}
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return state.Options{}, err
	}

	clock := ctx.Now
	if clock == nil {
		clock = time.Now
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup(rs)

	return state.Options{
		Store:    ctx.Store,
		Bridge:   b,
		Records:  rs,
		Settings: settings,
		Location: loc,
		Clock:    clock,
	}, nil
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	opts, err := c.Options(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
