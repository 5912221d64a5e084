package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/psqlbuilder"
)

const table = "slots"

var columns = []string{
	"id",
	"technician_id",
	"start_at",
	"end_at",
	"is_reserved",
	"intervention_id",
	"created_at",
	"updated_at",
}

// Repository хранилище слотов - единственный источник истины о занятости слота
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockTechnician берёт транзакционную advisory-блокировку на расписание техника
// Должен вызываться внутри транзакции; блокировка снимается при commit/rollback
func (r *Repository) LockTechnician(ctx context.Context, technicianID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	_, err := executor.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended('slots:technician:' || $1::text, 0))",
		technicianID,
	)
	if err != nil {
		return fmt.Errorf("%w: LockTechnician - execute: %w", ErrExecQuery, err)
	}

	return nil
}

// CreateIfAbsent создает слот, если слота с таким же интервалом у техника ещё нет
// Возвращает false, если слот уже существовал
func (r *Repository) CreateIfAbsent(ctx context.Context, s *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("technician_id", "start_at", "end_at", "is_reserved").
		Values(s.TechnicianID, s.StartAt, s.EndAt, false).
		Suffix("ON CONFLICT (technician_id, start_at, end_at) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - execute insert: %w", ErrExecQuery, err)
	}

	return true, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает слоты, пересекающиеся с окном [From, To)
// Опционально фильтрует по технику и только по свободным слотам
func (r *Repository) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Lt{"start_at": filter.To}).
		Where(squirrel.Gt{"end_at": filter.From})

	if filter.TechnicianID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"technician_id": *filter.TechnicianID})
	}
	if filter.FreeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_reserved": false})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC", "technician_id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Reserve атомарно резервирует слот за вмешательством
// Условие is_reserved = FALSE проверяется в том же UPDATE: из двух конкурентных
// вызовов успешен ровно один, второй получает ErrSlotAlreadyReserved
func (r *Repository) Reserve(ctx context.Context, slotID, interventionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_reserved", true).
		Set("intervention_id", interventionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "is_reserved": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, slotID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSlotNotFound
		}
		return ErrSlotAlreadyReserved
	}

	return nil
}

// Release освобождает слот, если он удерживается указанным вмешательством
// Ноль затронутых строк (слот не найден, уже свободен или занят другим вмешательством) даёт ErrSlotNotFound
func (r *Repository) Release(ctx context.Context, slotID, interventionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_reserved", false).
		Set("intervention_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "intervention_id": interventionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var exists bool
	err := executor.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM slots WHERE id = $1)", slotID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var interventionID sql.NullInt64

	err := row.Scan(
		&s.ID,
		&s.TechnicianID,
		&s.StartAt,
		&s.EndAt,
		&s.IsReserved,
		&interventionID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if interventionID.Valid {
		id := interventionID.Int64
		s.InterventionID = &id
	}

	return &s, nil
}
