package system

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/keyring"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
// Unlike --config, the stored value may carry a password.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string (URL or key=value DSN)."`
	Verify           bool   `help:"Connect once and check the schema before storing."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	conn := strings.TrimSpace(cmd.ConnectionString)
	if !storage.IsPostgres(conn) && !strings.Contains(conn, "host=") {
		return errors.New("connection string must be a postgres:// URL or a DSN with host=")
	}

	if _, err := postgres.ValidateConnString(conn); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Println("⚠ Connection string contains a password; it is kept only in the OS keyring.")
	}

	if cmd.Verify {
		store := postgres.New(conn)
		if err := store.Load(); err != nil {
			return fmt.Errorf("connection check failed: %w", err)
		}
		_ = store.Close()
		ctx.Println("✓ Connected to PostgreSQL")
	}

	if err := keyring.SetConnectionString(conn); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	ctx.Println("✓ Connection string stored in OS keyring")
	if os.Getenv(constants.EnvDBConnection) != "" {
		ctx.Printf("⚠ %s is set and takes precedence over the keyring\n", constants.EnvDBConnection)
	}
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	conn, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no connection string in keyring; use '%s keyring set' to store one", constants.AppName)
		}
		return fmt.Errorf("failed to read connection string from keyring: %w", err)
	}

	ctx.Println(maskPassword(conn))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	ctx.Println("✓ Connection string deleted from OS keyring")
	ctx.Println("  Attendance data stays in PostgreSQL; the next run uses --config unless another source is set.")
	return nil
}

// KeyringStatusCmd reports keyring availability and which source the
// PostgreSQL connection string is read from.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		ctx.Printf("  Set %s instead.\n", constants.EnvDBConnection)
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	switch _, err := keyring.GetConnectionString(); {
	case err == nil:
		ctx.Println("✓ Connection string stored")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("⊘ No connection string stored")
	default:
		ctx.Printf("⚠ Could not read keyring: %v\n", err)
	}

	conn, source := keyring.ResolveConnectionString("", os.Getenv(constants.EnvDBConnection))
	if source == keyring.SourceNone {
		ctx.Println("  Storage: --config path (SQLite or JSON)")
		return nil
	}
	ctx.Printf("  Storage: PostgreSQL from %s (%s)\n", source, maskPassword(conn))
	return nil
}

// maskPassword hides the password of a URL or DSN connection string.
func maskPassword(conn string) string {
	if scheme, rest, ok := strings.Cut(conn, "://"); ok {
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return conn
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return conn
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	fields := strings.Fields(conn)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
