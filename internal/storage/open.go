package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/headcount/internal/storage/postgres"
	"github.com/julianstephens/headcount/internal/storage/sqlite"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)

	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)

// IsPostgres reports whether config is a PostgreSQL connection URL.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// Open picks a provider for config: a PostgreSQL connection URL, a path
// ending in .json for the JSON file store, or any other path for SQLite.
// Connection strings carrying a password are rejected.
func Open(config string) (Provider, error) {
	if IsPostgres(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}

	if strings.EqualFold(filepath.Ext(config), ".json") {
		return NewJSONStore(config), nil
	}
	return sqlite.NewStore(config), nil
}
