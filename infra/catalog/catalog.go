// Package catalog serves the frame feed from a local SQLite file.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "modernc.org/sqlite"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// Store is a PageSource backed by SQLite. Items are served in insertion order.
// Safe for concurrent use.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log *log.Helper
}

// Open opens (and if needed creates) the catalog at path. ":memory:" is allowed.
func Open(path string, logger log.Logger) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if path == ":memory:" {
		// Each connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db, log: log.NewHelper(log.With(logger, "component", "catalog"))}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS frames (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		author TEXT NOT NULL DEFAULT '',
		caption TEXT NOT NULL DEFAULT '',
		created_at INTEGER,
		media_url TEXT NOT NULL DEFAULT '',
		preview_url TEXT NOT NULL DEFAULT '',
		media_kind TEXT NOT NULL DEFAULT 'other'
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Import appends items to the end of the catalog. Items whose ID is already
// present are skipped. Returns the number inserted.
func (s *Store) Import(ctx context.Context, items []domain.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO frames (id, author, caption, created_at, media_url, preview_url, media_kind)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, it := range items {
		var createdAt sql.NullInt64
		if !it.CreatedAt.IsZero() {
			createdAt = sql.NullInt64{Int64: it.CreatedAt.Unix(), Valid: true}
		}
		res, err := stmt.ExecContext(ctx, it.ID, it.Author, it.Caption, createdAt,
			it.Media.URL, it.Media.PreviewURL, it.Media.Kind.String())
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", it.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	s.log.Infow("msg", "catalog import", "offered", len(items), "inserted", inserted)
	return inserted, nil
}

// Count returns the number of items in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM frames`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count frames: %w", err)
	}
	return n, nil
}

// FetchPage implements app.PageSource. An empty catalog has one empty page.
func (s *Store) FetchPage(ctx context.Context, pageNumber, pageSize int) (domain.Page, error) {
	if pageNumber < 1 || pageSize < 1 {
		return domain.Page{}, fmt.Errorf("invalid page request %d/%d", pageNumber, pageSize)
	}

	total, err := s.Count(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	totalPages := max((total+pageSize-1)/pageSize, 1)

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author, caption, created_at, media_url, preview_url, media_kind
		FROM frames ORDER BY position LIMIT ? OFFSET ?`, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return domain.Page{}, fmt.Errorf("query page %d: %w", pageNumber, err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0, pageSize)
	for rows.Next() {
		var (
			it        domain.Item
			createdAt sql.NullInt64
			kind      string
		)
		if err := rows.Scan(&it.ID, &it.Author, &it.Caption, &createdAt,
			&it.Media.URL, &it.Media.PreviewURL, &kind); err != nil {
			return domain.Page{}, fmt.Errorf("scan page %d: %w", pageNumber, err)
		}
		if createdAt.Valid {
			it.CreatedAt = time.Unix(createdAt.Int64, 0).UTC()
		}
		it.Media.Kind = domain.ParseMediaKind(kind)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return domain.Page{}, fmt.Errorf("iterate page %d: %w", pageNumber, err)
	}

	return domain.Page{
		Items: items,
		Meta:  domain.PageMeta{Page: pageNumber, TotalPages: totalPages},
	}, nil
}
