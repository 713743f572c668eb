// Package store persists the submittal board in a SQLite file and stands
// in for the remote backend: it implements the board's gateway and fetch
// contracts, including the group renumber that follows every regular-slot
// write.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

const dirPerms = 0o750

// Store is a SQLite-backed board store. It satisfies board.Store. Safe for
// use from one process at a time; the directory lock enforces that.
type Store struct {
	db   *sql.DB
	lock *dirLock
	path string
}

// Open opens (or creates) the store directory and its database file.
func Open(ctx context.Context, dir string) (*Store, error) {
	if dir == "" {
		return nil, ErrPathEmpty
	}

	err := os.MkdirAll(dir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	lock, err := acquireDirLock(filepath.Join(dir, lockFileName))
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "board.db")

	db, err := openSQLite(ctx, dbPath)
	if err != nil {
		_ = lock.release()

		return nil, err
	}

	err = initSchema(ctx, db)
	if err != nil {
		_ = db.Close()
		_ = lock.release()

		return nil, err
	}

	return &Store{db: db, lock: lock, path: dbPath}, nil
}

// Close closes the database and releases the directory lock.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	lockErr := s.lock.release()

	return errors.Join(dbErr, lockErr)
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	err = applyPragmas(ctx, db)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	statements := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = MEMORY",
	}

	for _, stmt := range statements {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("apply pragma %q: %w", stmt, err)
		}
	}

	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
	id             TEXT PRIMARY KEY,
	assignee       TEXT NOT NULL DEFAULT '',
	manager        TEXT NOT NULL DEFAULT '',
	project        TEXT NOT NULL DEFAULT '',
	stage          TEXT NOT NULL DEFAULT '',
	job_number     TEXT NOT NULL DEFAULT '',
	release_number TEXT NOT NULL DEFAULT '',
	title          TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	due_date       TEXT NOT NULL DEFAULT '',
	updated_at     TEXT NOT NULL DEFAULT '',
	order_key      REAL
);

CREATE INDEX IF NOT EXISTS idx_items_assignee ON items(assignee);
`

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	return nil
}

const fetchSQL = `
SELECT id, assignee, manager, project, stage, job_number, release_number,
       title, status, notes, due_date, updated_at, order_key
FROM items
ORDER BY id
`

// FetchItems reads a full snapshot of the board.
func (s *Store) FetchItems(ctx context.Context) (board.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, fetchSQL)
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("fetch items: %w", err)
	}
	defer rows.Close()

	var items []board.WorkItem

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return board.Snapshot{}, scanErr
		}

		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("fetch items: %w", err)
	}

	return board.Snapshot{Items: items, AsOf: time.Now().UTC()}, nil
}

func scanItem(rows *sql.Rows) (board.WorkItem, error) {
	var (
		item     board.WorkItem
		due      string
		updated  string
		orderKey sql.NullFloat64
	)

	err := rows.Scan(
		&item.ID, &item.Assignee, &item.Manager, &item.Project, &item.Stage,
		&item.JobNumber, &item.ReleaseNumber, &item.Title, &item.Status,
		&item.Notes, &due, &updated, &orderKey,
	)
	if err != nil {
		return board.WorkItem{}, fmt.Errorf("scan item: %w", err)
	}

	if due != "" {
		if parsed, perr := time.Parse("2006-01-02", due); perr == nil {
			item.DueDate = parsed
		}
	}

	if updated != "" {
		if parsed, perr := time.Parse(time.RFC3339, updated); perr == nil {
			item.UpdatedAt = parsed
		}
	}

	if orderKey.Valid {
		item.Order = board.Order(orderKey.Float64)
	}

	return item, nil
}

// SetOrderKey persists an order-key change and renumbers the item's group
// in the same transaction: the written item takes the rank its key names
// among the group's other regular slots and the regular sequence repacks
// to 1..N. Urgent-slot items and null keys are untouched. A zero,
// negative, or otherwise out-of-contract value fails with
// ValidationError before the database is touched.
func (s *Store) SetOrderKey(ctx context.Context, itemID string, key board.OrderKey) error {
	if key.Valid && key.Value <= 0 {
		return &board.ValidationError{Value: key.String(), Reason: "order must be positive"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	assignee, err := assigneeOf(ctx, tx, itemID)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	err = writeOrderKey(ctx, tx, itemID, key, now)
	if err != nil {
		return err
	}

	err = renumberGroup(ctx, tx, assignee, itemID, key, now)
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func assigneeOf(ctx context.Context, tx *sql.Tx, itemID string) (string, error) {
	var assignee string

	err := tx.QueryRowContext(ctx, `SELECT assignee FROM items WHERE id = ?`, itemID).Scan(&assignee)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, itemID)
	}

	if err != nil {
		return "", fmt.Errorf("lookup item: %w", err)
	}

	return assignee, nil
}

func writeOrderKey(ctx context.Context, tx *sql.Tx, itemID string, key board.OrderKey, now string) error {
	value := sql.NullFloat64{}
	if key.Valid {
		value = sql.NullFloat64{Float64: key.Value, Valid: true}
	}

	_, err := tx.ExecContext(ctx,
		`UPDATE items SET order_key = ?, updated_at = ? WHERE id = ?`,
		value, now, itemID)
	if err != nil {
		return fmt.Errorf("write order key: %w", err)
	}

	return nil
}

// renumberGroup repacks the regular slots of one ordering group after a
// write. The written item is slotted in at the position its key names; all
// other regular items keep their relative order from before the write.
func renumberGroup(ctx context.Context, tx *sql.Tx, assignee, writtenID string, written board.OrderKey, now string) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM items
		 WHERE assignee = ? AND id != ? AND order_key >= 1
		 ORDER BY order_key, id`,
		assignee, writtenID)
	if err != nil {
		return fmt.Errorf("renumber query: %w", err)
	}

	var others []string

	for rows.Next() {
		var id string

		if scanErr := rows.Scan(&id); scanErr != nil {
			_ = rows.Close()

			return fmt.Errorf("renumber scan: %w", scanErr)
		}

		others = append(others, id)
	}

	if err = rows.Err(); err != nil {
		_ = rows.Close()

		return fmt.Errorf("renumber rows: %w", err)
	}

	_ = rows.Close()

	sequence := others

	if written.Classify() == board.Regular {
		at := int(written.Value) - 1
		if at > len(others) {
			at = len(others)
		}

		sequence = make([]string, 0, len(others)+1)
		sequence = append(sequence, others[:at]...)
		sequence = append(sequence, writtenID)
		sequence = append(sequence, others[at:]...)
	}

	for rank, id := range sequence {
		_, err = tx.ExecContext(ctx,
			`UPDATE items SET order_key = ?, updated_at = ? WHERE id = ?`,
			float64(rank+1), now, id)
		if err != nil {
			return fmt.Errorf("renumber update: %w", err)
		}
	}

	return nil
}

// Put inserts a new item. The zero Order persists as NULL.
func (s *Store) Put(ctx context.Context, item board.WorkItem) error {
	return s.upsert(ctx, item, false)
}

// Upsert inserts or replaces an item by id.
func (s *Store) Upsert(ctx context.Context, item board.WorkItem) error {
	return s.upsert(ctx, item, true)
}

func (s *Store) upsert(ctx context.Context, item board.WorkItem, replace bool) error {
	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}

	due := ""
	if !item.DueDate.IsZero() {
		due = item.DueDate.Format("2006-01-02")
	}

	updated := item.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	orderKey := sql.NullFloat64{}
	if item.Order.Valid {
		orderKey = sql.NullFloat64{Float64: item.Order.Value, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, verb+` INTO items
		(id, assignee, manager, project, stage, job_number, release_number,
		 title, status, notes, due_date, updated_at, order_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Assignee, item.Manager, item.Project, item.Stage,
		item.JobNumber, item.ReleaseNumber, item.Title, item.Status,
		item.Notes, due, updated.Format(time.RFC3339), orderKey)
	if err != nil {
		if !replace && isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}

		return fmt.Errorf("put item: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
