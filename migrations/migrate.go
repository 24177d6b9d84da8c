package migrations

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// Migrations are kept per dialect: the directory name is the goose dialect.
//
//go:embed sqlite3/*.sql postgres/*.sql
var embedMigrations embed.FS

// Run applies all pending migrations for the given dialect.
func Run(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrapf(err, "setting goose dialect %q", dialect)
	}
	if err := goose.Up(db, dialect); err != nil {
		return errors.Wrap(err, "applying migrations")
	}
	return nil
}
