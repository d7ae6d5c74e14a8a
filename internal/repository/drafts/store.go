// Package drafts persists return workflow drafts. The SQL store runs on the
// local sqlite file by default and on postgres for shared kiosk deployments.
package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/repository"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS return_drafts (
	id         TEXT PRIMARY KEY,
	booking_id TEXT NOT NULL,
	step       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
)`

const bookingIndex = `CREATE INDEX IF NOT EXISTS idx_return_drafts_booking ON return_drafts (booking_id, updated_at)`

var _ repository.DraftRepository = (*Store)(nil)

type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// Open connects to the draft database and creates the schema. For sqlite the
// parent directory of dsn is created first.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	if dialect == DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create draft directory: %w", err)
		}
	} else if dialect != DialectPostgres {
		return nil, fmt.Errorf("unsupported draft dialect: %s", dialect)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft database: %w", err)
	}
	if dialect == DialectSQLite {
		// one writer at a time on the device file
		db.SetMaxOpenConns(1)
	}

	s := New(db, dialect)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. The schema is not touched.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect, now: time.Now}
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range []string{schema, bookingIndex} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate drafts: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the draft. A missing ID is generated and
// UpdatedAt is always set to the current time.
func (s *Store) Save(ctx context.Context, draft *domain.ReturnDraft) error {
	logger.EnterMethod("draftStore.Save", "draftID", draft.ID, "bookingID", draft.BookingID, "step", draft.Step)

	stamp(draft, s.now())
	payload, err := json.Marshal(draft)
	if err != nil {
		logger.ExitMethodWithError("draftStore.Save", err, "draftID", draft.ID)
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := s.rebind(`
		INSERT INTO return_drafts (id, booking_id, step, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			booking_id = excluded.booking_id,
			step = excluded.step,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`)
	logger.DatabaseCall("upsert", "return_drafts", "draftID", draft.ID)
	res, err := s.db.ExecContext(ctx, query,
		draft.ID, draft.BookingID, string(draft.Step), string(payload),
		draft.CreatedAt.UnixMilli(), draft.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		logger.DatabaseResult("upsert", 0, err, "draftID", draft.ID)
		logger.ExitMethodWithError("draftStore.Save", err, "draftID", draft.ID)
		return fmt.Errorf("failed to save draft: %w", err)
	}
	rows, _ := res.RowsAffected()
	logger.DatabaseResult("upsert", rows, nil, "draftID", draft.ID)

	logger.ExitMethod("draftStore.Save", "draftID", draft.ID)
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.ReturnDraft, error) {
	logger.EnterMethod("draftStore.Get", "draftID", id)

	query := s.rebind(`SELECT payload FROM return_drafts WHERE id = ?`)
	draft, err := s.scanOne(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		logger.ExitMethodWithError("draftStore.Get", err, "draftID", id)
		return nil, err
	}

	logger.ExitMethod("draftStore.Get", "draftID", id, "step", draft.Step)
	return draft, nil
}

// GetActiveByBooking returns the most recently updated unfinished draft for
// the booking.
func (s *Store) GetActiveByBooking(ctx context.Context, bookingID string) (*domain.ReturnDraft, error) {
	logger.EnterMethod("draftStore.GetActiveByBooking", "bookingID", bookingID)

	query := s.rebind(`
		SELECT payload FROM return_drafts
		WHERE booking_id = ? AND step <> ?
		ORDER BY updated_at DESC
		LIMIT 1
	`)
	draft, err := s.scanOne(s.db.QueryRowContext(ctx, query, bookingID, string(domain.StepFinalized)))
	if err != nil {
		logger.ExitMethodWithError("draftStore.GetActiveByBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("draftStore.GetActiveByBooking", "draftID", draft.ID)
	return draft, nil
}

// List returns every draft, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.ReturnDraft, error) {
	logger.EnterMethod("draftStore.List")

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM return_drafts ORDER BY updated_at DESC`)
	if err != nil {
		logger.ExitMethodWithError("draftStore.List", err)
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var out []domain.ReturnDraft
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		var d domain.ReturnDraft
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, fmt.Errorf("failed to decode draft: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	logger.ExitMethod("draftStore.List", "count", len(out))
	return out, nil
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	logger.EnterMethod("draftStore.Delete", "draftID", id)

	query := s.rebind(`DELETE FROM return_drafts WHERE id = ?`)
	logger.DatabaseCall("delete", "return_drafts", "draftID", id)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("delete", 0, err, "draftID", id)
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	rows, _ := res.RowsAffected()
	logger.DatabaseResult("delete", rows, nil, "draftID", id)

	logger.ExitMethod("draftStore.Delete", "draftID", id)
	return nil
}

// DeleteStaleBefore removes drafts last updated before cutoff and reports how
// many were removed.
func (s *Store) DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	logger.EnterMethod("draftStore.DeleteStaleBefore", "cutoff", cutoff)

	query := s.rebind(`DELETE FROM return_drafts WHERE updated_at < ?`)
	logger.DatabaseCall("delete_stale", "return_drafts")
	res, err := s.db.ExecContext(ctx, query, cutoff.UnixMilli())
	if err != nil {
		logger.DatabaseResult("delete_stale", 0, err)
		return 0, fmt.Errorf("failed to purge drafts: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge drafts: %w", err)
	}
	logger.DatabaseResult("delete_stale", rows, nil)

	logger.ExitMethod("draftStore.DeleteStaleBefore", "deleted", rows)
	return rows, nil
}

func (s *Store) scanOne(row *sql.Row) (*domain.ReturnDraft, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	var d domain.ReturnDraft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

// rebind rewrites ? placeholders to $N for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stamp(draft *domain.ReturnDraft, now time.Time) {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	// millisecond precision matches what the columns hold
	now = now.Truncate(time.Millisecond)
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now
}
