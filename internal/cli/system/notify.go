package system

import (
	"fmt"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/notifier"
)

type NotifyCmd struct {
	Message string `arg:"" optional:"" help:"Message to send." default:"Notificación de prueba"`
	DryRun  bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	var n notifier.Notifier
	switch {
	case c.DryRun:
		n = notifier.NewConsole(ctx.Stdout())
	case ctx.Notifier != nil:
		n = ctx.Notifier
	default:
		settings, err := ctx.Settings()
		if err != nil {
			return err
		}
		n = notifier.New(settings.NotifyWebhook)
	}

	if err := n.Notify(c.Message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
