package portfolio

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is a portfolio catalog persisted in SQLite.
type Store struct {
	db       *sql.DB
	maxLinks int
}

// Open opens (or creates) the SQLite database at dbPath and ensures the
// portfolio table exists. Links returns at most maxLinks links per job.
func Open(dbPath string, maxLinks int) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS portfolio (
		id         TEXT PRIMARY KEY,
		techstack  TEXT NOT NULL,
		link       TEXT NOT NULL UNIQUE,
		added_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating portfolio table: %w", err)
	}

	if maxLinks < 1 {
		maxLinks = 1
	}
	return &Store{db: db, maxLinks: maxLinks}, nil
}

// Add inserts items in one transaction and reports how many were new.
// An item whose link is already stored is skipped. Items without an ID get one.
func (s *Store) Add(ctx context.Context, items ...Item) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin portfolio insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO portfolio (id, techstack, link) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare portfolio insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, it := range items {
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		res, err := stmt.ExecContext(ctx, id, it.Techstack, it.Link)
		if err != nil {
			return 0, fmt.Errorf("inserting portfolio link %s: %w", it.Link, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit portfolio insert: %w", err)
	}
	return added, nil
}

// All returns every stored item in insertion order.
func (s *Store) All(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, techstack, link FROM portfolio ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing portfolio: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Techstack, &it.Link); err != nil {
			return nil, fmt.Errorf("scanning portfolio row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing portfolio: %w", err)
	}
	return items, nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM portfolio").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting portfolio: %w", err)
	}
	return count, nil
}

// Links returns the stored links that best match skills.
func (s *Store) Links(ctx context.Context, skills []string) ([]string, error) {
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(items, skills, s.maxLinks), nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
