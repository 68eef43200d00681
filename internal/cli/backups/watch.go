package backups

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/cli"
)

// WatchCmd keeps running and writes backups on the configured schedule.
type WatchCmd struct {
	Schedule string `help:"Cron schedule overriding the backup_schedule setting."`
	Now      bool   `help:"Also run one backup immediately."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	spec := settings.BackupSchedule
	if c.Schedule != "" {
		spec = c.Schedule
	}

	b, err := ctx.Bridge()
	if err != nil {
		return err
	}
	sched, err := backup.NewScheduler(spec, b.AutoBackupJob())
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.watch(sigCtx, ctx, sched, spec)
}

// watch runs sched until done is cancelled.
func (c *WatchCmd) watch(done context.Context, ctx *cli.Context, sched *backup.Scheduler, spec string) error {
	if c.Now {
		sched.RunNow()
	}

	sched.Start()
	ctx.Printf("Watching: automatic backups on schedule %q to %s\n", spec, ctx.Backups().GetBackupDir())
	ctx.Println("Press Ctrl+C to stop.")

	<-done.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sched.Stop(stopCtx)

	ctx.Printf("Stopped after %d automatic backup(s).\n", sched.Runs())
	return nil
}
