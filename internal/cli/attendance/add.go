package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/tui/handlers"
	"github.com/julianstephens/headcount/internal/tui/state"
	"github.com/julianstephens/headcount/internal/utils"
	"github.com/julianstephens/headcount/internal/validation"
)

type AddCmd struct {
	Date        string `help:"Service date (YYYY-MM-DD). Defaults to today."`
	Service     string `short:"s" help:"Service: 9am, 11am, 5pm, 7pm, 6am, cena_amor or especial." default:"9am"`
	Attendees   int    `short:"a" help:"Number of attendees."`
	Children    int    `help:"Number of children."`
	Primary     int    `help:"Vehicles in the main parking lot."`
	Secondary   int    `help:"Vehicles in the Little Feet lot."`
	Total       *int   `help:"Total vehicles. Defaults to main plus Little Feet."`
	Offering    string `help:"Offering amount."`
	Notes       string `help:"Free-form notes."`
	Interactive bool   `short:"i" help:"Enter the record with a form."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Clock()
	if err != nil {
		return err
	}

	entry := validation.Entry{
		Date:      c.Date,
		Service:   c.Service,
		Attendees: c.Attendees,
		Children:  c.Children,
		Primary:   c.Primary,
		Secondary: c.Secondary,
		Total:     c.Total,
		Offering:  c.Offering,
		Notes:     c.Notes,
	}
	if entry.Date == "" {
		entry.Date = utils.DateOf(now)
	}

	if c.Interactive {
		entry, err = c.promptEntry(entry.Date)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Cancelled.")
				return nil
			}
			return err
		}
	}

	rec, err := validation.New().ValidateEntry(entry)
	if err != nil {
		return err
	}

	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}
	b, err := ctx.Bridge()
	if err != nil {
		return err
	}

	saved, err := b.Append(rs, rec)
	if err != nil {
		if errors.Is(err, records.ErrDuplicate) {
			return fmt.Errorf("%s already has a %s record", utils.FormatLongDate(rec.Date), rec.Service.Label())
		}
		return err
	}

	ctx.Printf("✓ Recorded %s, %s: %d attendees, %d vehicles\n",
		utils.FormatLongDate(saved.Date), saved.Service.Label(), saved.Attendees, saved.VehiclesTotal)
	ctx.PerformAutomaticBackup(rs)
	return nil
}

func (c *AddCmd) promptEntry(date string) (validation.Entry, error) {
	fm := state.NewRecordFormModel(date)
	if err := handlers.NewRecordForm(fm).Run(); err != nil {
		return validation.Entry{}, err
	}
	return fm.Entry()
}
