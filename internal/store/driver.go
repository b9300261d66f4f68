package store

import (
	"database/sql"

	// pgx's database/sql adapter registers the "pgx" driver for production
	// Postgres use.
	_ "github.com/jackc/pgx/v5/stdlib"
	// go-sqlite3 registers the "sqlite3" driver for the embedded/local/test
	// store.
	_ "github.com/mattn/go-sqlite3"
)

// Open opens a *sql.DB for driver ("pgx", "sqlite3", or "postgres" when
// built with the pq tag) and dsn, suitable for passing to Config.DB.
func Open(driver, dsn string) (*sql.DB, error) {
	return sql.Open(driver, dsn)
}
