package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/report"
	"github.com/julianstephens/headcount/internal/trend"
	"github.com/julianstephens/headcount/internal/utils"
)

type ExportCmd struct {
	Kind   string `arg:"" enum:"daily,weekly,monthly,complete,json" help:"Report to export: daily, weekly, monthly, complete or json."`
	Format string `short:"f" enum:"csv,xlsx" default:"csv" help:"Output format for the complete report (csv or xlsx)."`
	Out    string `short:"o" help:"Output file. Defaults to the report's standard name in the current directory; '-' writes to stdout."`
	Date   string `help:"Day of the daily report (YYYY-MM-DD). Defaults to today."`
	Month  string `help:"Month of the monthly report (YYYY-MM). Defaults to the current month."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if c.Format == "xlsx" && c.Kind != "complete" {
		return fmt.Errorf("xlsx format is only available for the complete report")
	}

	now, err := ctx.Clock()
	if err != nil {
		return err
	}
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}

	name, write, commit, err := c.render(ctx, rs, now)
	if err != nil {
		return err
	}

	if c.Out == "-" {
		if err := write(ctx.Stdout()); err != nil {
			return err
		}
		return commit()
	}

	path := name
	if c.Out != "" {
		if path, err = utils.ExpandHome(c.Out); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := commit(); err != nil {
		return err
	}

	ctx.Printf("✓ Exported %s report to %s (%s)\n", c.Kind, path, humanize.Bytes(uint64(buf.Len())))
	return nil
}

// render returns the default file name of the report, a function that
// writes it and a function to run once the output is written.
func (c *ExportCmd) render(ctx *cli.Context, rs *records.Store, now time.Time) (string, func(io.Writer) error, func() error, error) {
	recs := rs.All()
	noCommit := func() error { return nil }
	bytesOf := func(data []byte) func(io.Writer) error {
		return func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}
	}

	settings, err := ctx.Settings()
	if err != nil {
		return "", nil, nil, err
	}

	switch c.Kind {
	case "daily":
		date := c.Date
		if date == "" {
			date = utils.DateOf(now)
		}
		if !utils.ValidateDateFormat(date) {
			return "", nil, nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
		}
		return report.DailyFilename(date), bytesOf(report.DailyCSV(date, trend.ForDate(recs, date).Records)), noCommit, nil

	case "weekly":
		week := trend.LastSevenDays(recs, now)
		return report.WeeklyFilename(now), bytesOf(report.WeeklyCSV(settings.ChurchName, now, week)), noCommit, nil

	case "monthly":
		year, month := now.Year(), now.Month()
		if c.Month != "" {
			t, err := time.Parse("2006-01", c.Month)
			if err != nil {
				return "", nil, nil, fmt.Errorf("invalid month %q, use YYYY-MM", c.Month)
			}
			year, month = t.Year(), t.Month()
		}
		inMonth := trend.CurrentMonth(recs, time.Date(year, month, 1, 0, 0, 0, 0, now.Location()))
		return report.MonthlyFilename(year, month), bytesOf(report.MonthlyCSV(year, month, inMonth)), noCommit, nil

	case "complete":
		if c.Format == "xlsx" {
			return report.CompleteFilename("xlsx"), func(w io.Writer) error {
				return report.CompleteXLSX(settings.ChurchName, now, recs, w)
			}, noCommit, nil
		}
		return report.CompleteFilename("csv"), bytesOf(report.CompleteCSV(settings.ChurchName, now, recs)), noCommit, nil

	case "json":
		b, err := ctx.Bridge()
		if err != nil {
			return "", nil, nil, err
		}
		var stamp time.Time
		write := func(w io.Writer) error {
			var err error
			stamp, err = b.Export(rs, w)
			return err
		}
		commit := func() error {
			if err := b.MarkBackup(stamp); err != nil {
				return fmt.Errorf("failed to record backup time: %w", err)
			}
			return nil
		}
		return report.JSONFilename(now), write, commit, nil
	}

	return "", nil, nil, fmt.Errorf("unknown report %q", c.Kind)
}
