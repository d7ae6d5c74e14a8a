package drafts

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk full")

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func openSQLite(t *testing.T) (*Store, *clock) {
	t.Helper()
	s, err := Open(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "nested", "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	c := &clock{t: time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)}
	s.now = c.now
	return s, c
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, c := openSQLite(t)

	draft := &domain.ReturnDraft{
		BookingID:      "B1",
		ReceiptID:      "R1",
		Step:           domain.StepAdditionalFees,
		CapturedPhotos: []string{"/cam/1.jpg"},
		Inspection:     &domain.Inspection{EndOdometerKm: 12000, EndBatteryPercentage: 64},
	}
	require.NoError(t, s.Save(ctx, draft))
	require.NotEmpty(t, draft.ID)
	assert.True(t, draft.CreatedAt.Equal(c.t))

	got, err := s.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "B1", got.BookingID)
	assert.Equal(t, domain.StepAdditionalFees, got.Step)
	assert.Equal(t, []string{"/cam/1.jpg"}, got.CapturedPhotos)
	assert.Equal(t, 64.0, got.Inspection.EndBatteryPercentage)

	t.Run("upsert keeps created time", func(t *testing.T) {
		c.t = c.t.Add(time.Hour)
		got.Step = domain.StepReceiptCreated
		require.NoError(t, s.Save(ctx, got))

		again, err := s.Get(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StepReceiptCreated, again.Step)
		assert.True(t, again.CreatedAt.Equal(draft.CreatedAt))
		assert.True(t, again.UpdatedAt.Equal(c.t))
	})

	t.Run("active by booking skips finalized", func(t *testing.T) {
		active, err := s.GetActiveByBooking(ctx, "B1")
		require.NoError(t, err)
		assert.Equal(t, draft.ID, active.ID)

		active.Step = domain.StepFinalized
		require.NoError(t, s.Save(ctx, active))
		_, err = s.GetActiveByBooking(ctx, "B1")
		assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	})

	t.Run("missing draft", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	})
}

func TestStore_SQLiteListDeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	s, c := openSQLite(t)

	old := &domain.ReturnDraft{BookingID: "OLD", Step: domain.StepPhotoCapture}
	require.NoError(t, s.Save(ctx, old))
	c.t = c.t.Add(80 * time.Hour)
	fresh := &domain.ReturnDraft{BookingID: "NEW", Step: domain.StepSummary}
	require.NoError(t, s.Save(ctx, fresh))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "NEW", list[0].BookingID)

	n, err := s.DeleteStaleBefore(ctx, c.t.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(ctx, old.ID)
	assert.ErrorIs(t, err, repository.ErrDraftNotFound)

	require.NoError(t, s.Delete(ctx, fresh.ID))
	require.NoError(t, s.Delete(ctx, fresh.ID))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "x")
	assert.Error(t, err)
}

func TestStore_PostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db, DialectPostgres)
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }
	ctx := context.Background()

	t.Run("save", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, $5, $6)")).
			WithArgs("D1", "B1", "summary", sqlmock.AnyArg(), at.UnixMilli(), at.UnixMilli()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Save(ctx, &domain.ReturnDraft{ID: "D1", BookingID: "B1", Step: domain.StepSummary})
		require.NoError(t, err)
	})

	t.Run("active by booking", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE booking_id = $1 AND step <> $2")).
			WithArgs("B1", "finalized").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"id":"D1","bookingId":"B1","step":"summary"}`))

		d, err := s.GetActiveByBooking(ctx, "B1")
		require.NoError(t, err)
		assert.Equal(t, "D1", d.ID)
	})

	t.Run("get not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs("D2").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}))

		_, err := s.Get(ctx, "D2")
		assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	})

	t.Run("purge", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("WHERE updated_at < $1")).
			WithArgs(at.UnixMilli()).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := s.DeleteStaleBefore(ctx, at)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("delete error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM return_drafts WHERE id = $1")).
			WithArgs("D1").
			WillReturnError(errDisk)

		err := s.Delete(ctx, "D1")
		assert.ErrorIs(t, err, errDisk)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: DialectPostgres}
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))
	lite := &Store{dialect: DialectSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }

	d := &domain.ReturnDraft{BookingID: "B1", Step: domain.StepPhotoCapture}
	require.NoError(t, m.Save(ctx, d))

	got, err := m.Get(ctx, d.ID)
	require.NoError(t, err)
	got.CapturedPhotos = append(got.CapturedPhotos, "/x.jpg")

	fresh, err := m.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.CapturedPhotos, "stored draft must not alias returned copies")

	active, err := m.GetActiveByBooking(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, d.ID, active.ID)

	n, err := m.DeleteStaleBefore(ctx, at.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = m.Get(ctx, d.ID)
	assert.ErrorIs(t, err, repository.ErrDraftNotFound)
}

func TestMemory_PurgeKeepsResavedDrafts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }

	stale := &domain.ReturnDraft{BookingID: "B1", Step: domain.StepPhotoCapture}
	touched := &domain.ReturnDraft{BookingID: "B2", Step: domain.StepPhotoCapture}
	require.NoError(t, m.Save(ctx, stale))
	require.NoError(t, m.Save(ctx, touched))

	at = at.Add(2 * time.Hour)
	require.NoError(t, m.Save(ctx, touched))

	n, err := m.DeleteStaleBefore(ctx, at.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = m.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	_, err = m.Get(ctx, touched.ID)
	assert.NoError(t, err)

	t.Run("concurrent saves survive", func(t *testing.T) {
		m := NewMemory()
		cutoff := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return cutoff.Add(time.Minute) }

		var wg sync.WaitGroup
		ids := make(chan string, 50)
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				d := &domain.ReturnDraft{BookingID: "B", Step: domain.StepPhotoCapture}
				if assert.NoError(t, m.Save(ctx, d)) {
					ids <- d.ID
				}
			}()
			go func() {
				defer wg.Done()
				_, err := m.DeleteStaleBefore(ctx, cutoff)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		close(ids)

		for id := range ids {
			_, err := m.Get(ctx, id)
			assert.NoError(t, err)
		}
	})
}
