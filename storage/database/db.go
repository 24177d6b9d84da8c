package database

import (
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/migrations"
)

// Open connects to the configured engine. With sqlite3 the database file is
// created on first startup if absent.
func Open(conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case "sqlite3":
		dsn := conf.Database.Path + "?_busy_timeout=5000&_journal_mode=WAL&_fk=1"
		return sqlx.Open("sqlite3", dsn)

	case "postgres":
		sslMode := "require"
		if conf.Database.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   conf.Database.Engine,
			User:     url.UserPassword(conf.Database.User, conf.Database.Password),
			Host:     conf.Database.Address(),
			Path:     conf.Database.Name,
			RawQuery: q.Encode(),
		}
		return sqlx.Open("postgres", u.String())

	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func Migrate(db *sqlx.DB, conf *core.Config) error {
	if err := migrations.Run(db.DB, conf.Database.Engine); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
