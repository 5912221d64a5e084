package slot

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_CreateIfAbsent(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := time.Now()

	t.Run("inserted", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO slots .* ON CONFLICT \(technician_id, start_at, end_at\) DO NOTHING`).
			WithArgs(int64(5), start, end, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

		s := &domain.Slot{TechnicianID: 5, StartAt: start, EndAt: end}
		created, err := repo.CreateIfAbsent(context.Background(), s)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(11), s.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already exists", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO slots`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

		created, err := repo.CreateIfAbsent(context.Background(), &domain.Slot{TechnicianID: 5, StartAt: start, EndAt: end})

		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM slots WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, 5, start, start.Add(time.Hour), true, 42, start, start))

	s, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, s.IsReserved)
	require.NotNil(t, s.InterventionID)
	assert.Equal(t, int64(42), *s.InterventionID)

	mock.ExpectQuery(`SELECT .* FROM slots WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	tech := int64(5)

	mock.ExpectQuery(`SELECT .* FROM slots WHERE start_at < \$1 AND end_at > \$2 AND technician_id = \$3 AND is_reserved = \$4 ORDER BY start_at ASC`).
		WithArgs(to, from, tech, false).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 5, from.Add(9*time.Hour), from.Add(10*time.Hour), false, nil, from, from).
			AddRow(2, 5, from.Add(10*time.Hour), from.Add(11*time.Hour), false, nil, from, from))

	slots, err := repo.List(context.Background(), domain.SlotsFilter{TechnicianID: &tech, From: from, To: to, FreeOnly: true})

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Nil(t, slots[0].InterventionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve(t *testing.T) {
	t.Run("reserved", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE slots SET is_reserved = \$1, intervention_id = \$2, updated_at = NOW\(\) WHERE id = \$3 AND is_reserved = \$4`).
			WithArgs(true, int64(42), int64(3), false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Reserve(context.Background(), 3, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already reserved", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE slots`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Reserve(context.Background(), 3, 42)
		assert.ErrorIs(t, err, ErrSlotAlreadyReserved)
	})

	t.Run("missing slot", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE slots`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Reserve(context.Background(), 3, 42)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("driver error keeps cause", func(t *testing.T) {
		repo, mock := newMock(t)
		cause := errors.New("connection reset")
		mock.ExpectExec(`UPDATE slots`).WillReturnError(cause)

		err := repo.Reserve(context.Background(), 3, 42)
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.ErrorIs(t, err, cause)
	})
}

func TestRepository_Release(t *testing.T) {
	t.Run("released by holder", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE slots SET is_reserved = \$1, intervention_id = \$2, updated_at = NOW\(\) WHERE id = \$3 AND intervention_id = \$4`).
			WithArgs(false, nil, int64(3), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Release(context.Background(), 3, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("held by another intervention", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE slots`).
			WithArgs(false, nil, int64(3), int64(41)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Release(context.Background(), 3, 41), ErrSlotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_LockTechnician(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.LockTechnician(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
