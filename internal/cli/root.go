package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/logger"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/notifier"
	"github.com/julianstephens/headcount/internal/persistence"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/seed"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/storage/postgres"
	"github.com/julianstephens/headcount/internal/utils"
)

type Context struct {
	Store storage.Provider

	// Flag or environment overrides. Empty values fall back to the stored
	// settings.
	SeedSource string
	Timezone   string

	// Optional collaborators; nil selects the default.
	Notifier notifier.Notifier
	Fetcher  persistence.Fetcher
	Out      io.Writer
	In       io.Reader
	Now      func() time.Time

	settings *models.Settings
	bridge   *persistence.Bridge
	backups  *backup.Manager
}

// Stdout returns the writer command output goes to.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Print writes command output as-is.
func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.Stdout(), args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the stored settings with flag overrides applied. The
// result is cached for the lifetime of the command.
func (c *Context) Settings() (models.Settings, error) {
	if c.settings != nil {
		return *c.settings, nil
	}

	s, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&s)
	if c.SeedSource != "" {
		s.SeedSource = c.SeedSource
	}
	if c.Timezone != "" {
		s.Timezone = c.Timezone
	}

	c.settings = &s
	return s, nil
}

// InvalidateSettings drops the cached settings after they were changed.
func (c *Context) InvalidateSettings() {
	c.settings = nil
	c.bridge = nil
}

// Location returns the configured timezone.
func (c *Context) Location() (*time.Location, error) {
	s, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Clock returns the current time in the configured timezone.
func (c *Context) Clock() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(loc), nil
}

// Backups returns the backup manager for the current store. PostgreSQL
// stores keep their backups under the default config directory.
func (c *Context) Backups() *backup.Manager {
	if c.backups != nil {
		return c.backups
	}

	base := c.Store.GetConfigPath()
	if _, ok := c.Store.(*postgres.Store); ok {
		base = constants.DefaultConfigPath
	}
	if expanded, err := utils.ExpandHome(base); err == nil {
		base = expanded
	}

	c.backups = backup.NewManager(base)
	return c.backups
}

// Bridge returns the persistence bridge configured from settings.
func (c *Context) Bridge() (*persistence.Bridge, error) {
	if c.bridge != nil {
		return c.bridge, nil
	}

	s, err := c.Settings()
	if err != nil {
		return nil, err
	}

	n := c.Notifier
	if n == nil {
		n = notifier.New(s.NotifyWebhook)
	}
	f := c.Fetcher
	if f == nil {
		f = seed.NewLoader(30 * time.Second)
	}

	c.bridge = persistence.New(c.Store, persistence.Options{
		SeedSource: s.SeedSource,
		Fetcher:    f,
		Notifier:   n,
		Backups:    c.Backups(),
	})
	return c.bridge, nil
}

// LoadRecords builds the record store from the seed dataset and storage.
func (c *Context) LoadRecords(ctx context.Context) (*records.Store, error) {
	b, err := c.Bridge()
	if err != nil {
		return nil, err
	}
	return b.Load(ctx)
}

// PerformAutomaticBackup writes a backup of rs unless the last one is still
// fresh. Failures are logged and never interrupt the caller.
func (c *Context) PerformAutomaticBackup(rs *records.Store) {
	b, err := c.Bridge()
	if err != nil {
		logger.Warn("Automatic backup skipped", "error", err)
		return
	}

	now, err := c.Clock()
	if err != nil {
		now = time.Now()
	}
	if status, err := b.BackupStatus(now); err == nil && status.Level == backup.Fresh {
		return
	}

	if _, err := b.CreateBackup(rs); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on the command input. Anything other than
// "y" or "yes" is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
