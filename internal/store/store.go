// Package store is the citation-lookup history store named in
// SPEC_FULL.md §10.5, grounded on internal/web/session's DatabaseStore: a
// database/sql-backed store with a config struct, lazy table creation, and
// an optional background cleanup goroutine, adapted from session rows to
// citation-lookup rows.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Lookup is one recorded citation lookup: the text that was searched, which
// template (if any) matched, and the URL it resolved to.
type Lookup struct {
	ID           int64
	Text         string
	TemplateName string
	URL          *string
	CreatedAt    time.Time
}

// Store persists Lookups.
type Store struct {
	db        *sql.DB
	tableName string
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// Config configures a Store.
type Config struct {
	// DB is the already-open connection (see Open for constructing one from
	// a driver name and DSN).
	DB *sql.DB

	// TableName is the lookup-history table's name.
	TableName string

	// CleanupInterval is how often to prune old rows (0 disables it).
	CleanupInterval time.Duration

	// CleanupAfter is the row age pruning removes (ignored if
	// CleanupInterval is 0).
	CleanupAfter time.Duration
}

// DefaultConfig returns a Config for db with a daily cleanup of rows older
// than 30 days.
func DefaultConfig(db *sql.DB) *Config {
	return &Config{
		DB:              db,
		TableName:       "citation_lookups",
		CleanupInterval: 24 * time.Hour,
		CleanupAfter:    30 * 24 * time.Hour,
	}
}

// New builds a Store, creating its table if it doesn't already exist.
func New(cfg *Config) (*Store, error) {
	s := &Store{
		db:        cfg.DB,
		tableName: cfg.TableName,
		stopChan:  make(chan struct{}),
	}

	if err := s.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", s.tableName, err)
	}

	if cfg.CleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanup(cfg.CleanupInterval, cfg.CleanupAfter)
	}

	return s, nil
}

func (s *Store) createTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id SERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			template_name TEXT NOT NULL,
			url TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`, s.tableName)

	_, err := s.db.Exec(query)
	if err != nil {
		return err
	}

	indexQuery := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at)`,
		s.tableName, s.tableName,
	)
	_, err = s.db.Exec(indexQuery)
	return err
}

// Record persists a lookup of text that matched templateName (empty if
// nothing matched), resolving to url (nil if the match produced no URL).
func (s *Store) Record(ctx context.Context, text, templateName string, url *string) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (text, template_name, url, created_at) VALUES ($1, $2, $3, $4)`,
		s.tableName,
	)
	_, err := s.db.ExecContext(ctx, query, text, templateName, url, time.Now())
	if err != nil {
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// Recent returns the most recently recorded lookups, newest first, up to
// limit rows.
func (s *Store) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	query := fmt.Sprintf(
		`SELECT id, text, template_name, url, created_at FROM %s ORDER BY created_at DESC LIMIT $1`,
		s.tableName,
	)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	defer rows.Close()

	var out []Lookup
	for rows.Next() {
		var l Lookup
		var url sql.NullString
		if err := rows.Scan(&l.ID, &l.Text, &l.TemplateName, &url, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("database scan error: %w", err)
		}
		if url.Valid {
			l.URL = &url.String
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Close stops the cleanup goroutine, if running. The underlying *sql.DB is
// managed by the caller and is not closed here.
func (s *Store) Close() error {
	if s.stopChan != nil {
		close(s.stopChan)
		s.wg.Wait()
	}
	return nil
}

func (s *Store) cleanup(interval, after time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			query := fmt.Sprintf(`DELETE FROM %s WHERE created_at <= $1`, s.tableName)
			_, _ = s.db.Exec(query, time.Now().Add(-after))
		}
	}
}
