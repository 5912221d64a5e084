package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/psqlbuilder"
)

const table = "booking_requests"

var columns = []string{
	"id",
	"client_id",
	"motive",
	"desired_date",
	"claim_id",
	"slot_id",
	"comment",
	"status",
	"assigned_responsable_id",
	"intervention_id",
	"refusal_reason",
	"processed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockClient сериализует создание заявок одного клиента
// Блокировка транзакционная, вызывать только внутри транзакции
func (r *Repository) LockClient(ctx context.Context, clientID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	_, err := executor.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended('requests:client:' || $1::text, 0))",
		clientID,
	)
	if err != nil {
		return fmt.Errorf("%w: LockClient - execute: %w", ErrExecQuery, err)
	}

	return nil
}

// HasActive проверяет, есть ли у клиента активная заявка:
// pending, либо confirmed с ещё не прошедшим слотом и незавершённым вмешательством
func (r *Repository) HasActive(ctx context.Context, clientID int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table + " r").
		LeftJoin("slots s ON s.id = r.slot_id").
		LeftJoin("interventions i ON i.id = r.intervention_id").
		Where(squirrel.Eq{"r.client_id": clientID}).
		Where(squirrel.Or{
			squirrel.Eq{"r.status": domain.RequestStatusPending},
			squirrel.And{
				squirrel.Eq{"r.status": domain.RequestStatusConfirmed},
				squirrel.Gt{"s.end_at": now},
				squirrel.Eq{"i.status": []string{
					string(domain.InterventionStatusPlanned),
					string(domain.InterventionStatusInProgress),
				}},
			},
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActive - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasActive - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// Create сохраняет новую заявку
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"motive",
			"desired_date",
			"claim_id",
			"slot_id",
			"comment",
			"status",
			"assigned_responsable_id",
		).
		Values(
			req.ClientID,
			req.Motive,
			req.DesiredDate,
			req.ClaimID,
			req.SlotID,
			req.Comment,
			req.Status,
			req.AssignedResponsableID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает заявку по ID и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.get(ctx, id, true)
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// ListByClient возвращает заявки клиента, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status *domain.RequestStatus) ([]*domain.BookingRequest, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "ListByClient", selectBuilder)
}

// ListPending возвращает заявки в статусе pending, старые первыми
func (r *Repository) ListPending(ctx context.Context, filter domain.PendingRequestsFilter) ([]*domain.BookingRequest, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.RequestStatusPending}).
		OrderBy("created_at ASC", "id ASC")

	if filter.AssignedResponsableID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"assigned_responsable_id": *filter.AssignedResponsableID})
	}

	return r.list(ctx, "ListPending", selectBuilder)
}

// Confirm переводит заявку pending -> confirmed и связывает её со слотом и вмешательством
func (r *Repository) Confirm(ctx context.Context, id, slotID, interventionID int64) error {
	return r.transition(ctx, "Confirm", id, map[string]interface{}{
		"status":          domain.RequestStatusConfirmed,
		"slot_id":         slotID,
		"intervention_id": interventionID,
		"processed_at":    squirrel.Expr("NOW()"),
	})
}

// Refuse переводит заявку pending -> refused с причиной отказа
func (r *Repository) Refuse(ctx context.Context, id int64, reason string) error {
	return r.transition(ctx, "Refuse", id, map[string]interface{}{
		"status":         domain.RequestStatusRefused,
		"refusal_reason": reason,
		"processed_at":   squirrel.Expr("NOW()"),
	})
}

// Cancel переводит заявку pending -> cancelled
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	return r.transition(ctx, "Cancel", id, map[string]interface{}{
		"status":       domain.RequestStatusCancelled,
		"cancelled_at": squirrel.Expr("NOW()"),
	})
}

// transition обновляет заявку только если она всё ещё в статусе pending
func (r *Repository) transition(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values["updated_at"] = squirrel.Expr("NOW()")

	query, args, err := psqlbuilder.Update(table).
		SetMap(values).
		Where(squirrel.Eq{"id": id, "status": domain.RequestStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrRequestNotPending
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	requests := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return requests, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var (
		claimID, slotID, responsableID, interventionID sql.NullInt64
		comment, refusalReason                         sql.NullString
		processedAt, cancelledAt                       sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.ClientID,
		&req.Motive,
		&req.DesiredDate,
		&claimID,
		&slotID,
		&comment,
		&req.Status,
		&responsableID,
		&interventionID,
		&refusalReason,
		&processedAt,
		&cancelledAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.ClaimID = nullInt64(claimID)
	req.SlotID = nullInt64(slotID)
	req.AssignedResponsableID = nullInt64(responsableID)
	req.InterventionID = nullInt64(interventionID)
	req.Comment = nullString(comment)
	req.RefusalReason = nullString(refusalReason)
	req.ProcessedAt = nullTime(processedAt)
	req.CancelledAt = nullTime(cancelledAt)

	return &req, nil
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
