package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// defaultListLimit bounds list queries that pass a non-positive limit.
const defaultListLimit = 50

// Repository stores the board activity ledger.
type Repository struct {
	db *sql.DB
}

var _ app.ChangeLedger = (*Repository)(nil)

// OpenInMemory opens a private in-memory ledger that lives until Close.
func OpenInMemory() (*Repository, error) {
	dsn := "file:lanes-" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// one connection keeps the memory database alive and serializes writers
	db.SetMaxOpenConns(1)
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close releases the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the ledger schema.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS change_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			operation TEXT NOT NULL,
			from_lane TEXT NOT NULL DEFAULT '',
			to_lane TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_change_events_created_at ON change_events(created_at DESC, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_change_events_item ON change_events(item_id, id DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// AppendChangeEvents writes events in one transaction.
func (r *Repository) AppendChangeEvents(ctx context.Context, events []domain.ChangeEvent) (err error) {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin change events tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, event := range events {
		if err = insertChangeEvent(ctx, tx, event); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit change events: %w", err)
	}
	return nil
}

// ListChangeEvents lists events newest first.
func (r *Repository) ListChangeEvents(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, title, operation, from_lane, to_lane, created_at
		FROM change_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list change events: %w", err)
	}
	defer rows.Close()
	return scanChangeEvents(rows)
}

// ListItemChangeEvents lists the events of one item, newest first.
func (r *Repository) ListItemChangeEvents(ctx context.Context, itemID string, limit int) ([]domain.ChangeEvent, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, errors.New("item id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, title, operation, from_lane, to_lane, created_at
		FROM change_events
		WHERE item_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list item change events: %w", err)
	}
	defer rows.Close()
	return scanChangeEvents(rows)
}

// execerContext is the write contract shared by DB and Tx.
type execerContext interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

// insertChangeEvent inserts one ledger row.
func insertChangeEvent(ctx context.Context, execer execerContext, event domain.ChangeEvent) error {
	if strings.TrimSpace(event.ItemID) == "" {
		return errors.New("insert change event: item id is required")
	}
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	_, err := execer.ExecContext(ctx, `
		INSERT INTO change_events(item_id, title, operation, from_lane, to_lane, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		event.ItemID,
		event.Title,
		string(event.Operation),
		string(event.FromLane),
		string(event.ToLane),
		ts(occurred),
	)
	if err != nil {
		return fmt.Errorf("insert change event: %w", err)
	}
	return nil
}

// scanChangeEvents decodes ledger rows.
func scanChangeEvents(rows *sql.Rows) ([]domain.ChangeEvent, error) {
	out := make([]domain.ChangeEvent, 0)
	for rows.Next() {
		var (
			event      domain.ChangeEvent
			opRaw      string
			fromRaw    string
			toRaw      string
			createdRaw string
		)
		if err := rows.Scan(&event.ID, &event.ItemID, &event.Title, &opRaw, &fromRaw, &toRaw, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan change event: %w", err)
		}
		event.Operation = normalizeChangeOperation(opRaw)
		event.FromLane = domain.Lane(strings.TrimSpace(fromRaw))
		event.ToLane = domain.Lane(strings.TrimSpace(toRaw))
		event.OccurredAt = parseTS(createdRaw)
		out = append(out, event)
	}
	return out, rows.Err()
}

// normalizeChangeOperation maps stored operation text to a known value.
func normalizeChangeOperation(raw string) domain.ChangeOperation {
	switch raw = strings.TrimSpace(strings.ToLower(raw)); raw {
	case string(domain.ChangeOperationCreate):
		return domain.ChangeOperationCreate
	case string(domain.ChangeOperationMove):
		return domain.ChangeOperationMove
	default:
		return domain.ChangeOperation(raw)
	}
}

// ts formats timestamps for storage.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses a stored timestamp.
func parseTS(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
