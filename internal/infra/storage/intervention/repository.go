package intervention

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

const (
	table      = "interventions"
	partsTable = "intervention_parts"
)

var columns = []string{
	"id",
	"claim_id",
	"request_id",
	"technician_id",
	"slot_id",
	"scheduled_at",
	"status",
	"labor_amount",
	"total_amount",
	"is_free",
	"is_paid",
	"started_at",
	"completed_at",
	"cancelled_at",
	"paid_at",
	"created_at",
	"updated_at",
}

var partColumns = []string{
	"id",
	"intervention_id",
	"part_id",
	"part_name",
	"quantity",
	"unit_price",
	"subtotal",
	"created_at",
}

// Repository репозиторий вмешательств и строк запчастей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вмешательств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое вмешательство
func (r *Repository) Create(ctx context.Context, iv *domain.Intervention) (*domain.Intervention, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"claim_id",
			"request_id",
			"technician_id",
			"slot_id",
			"scheduled_at",
			"status",
			"labor_amount",
			"total_amount",
			"is_free",
			"is_paid",
		).
		Values(
			iv.ClaimID,
			iv.RequestID,
			iv.TechnicianID,
			iv.SlotID,
			iv.ScheduledAt,
			iv.Status,
			iv.LaborAmount,
			iv.TotalAmount,
			iv.IsFree,
			iv.IsPaid,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return iv, nil
}

// GetByID получает вмешательство вместе со строками запчастей
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Intervention, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate как GetByID, но блокирует строку вмешательства до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Intervention, error) {
	return r.get(ctx, id, true)
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Intervention, error) {
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

	iv, err := scanIntervention(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInterventionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan intervention: %w", ErrScanRow, err)
	}

	parts, err := r.ListParts(ctx, id)
	if err != nil {
		return nil, err
	}
	iv.Parts = parts

	return iv, nil
}

// List возвращает вмешательства по фильтру, ближайшие первыми
// Строки запчастей не загружаются
func (r *Repository) List(ctx context.Context, filter domain.InterventionsFilter) ([]*domain.Intervention, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.TechnicianID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"technician_id": *filter.TechnicianID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_at": *filter.To})
	}

	query, args, err := selectBuilder.OrderBy("scheduled_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	interventions := make([]*domain.Intervention, 0)
	for rows.Next() {
		iv, err := scanIntervention(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		interventions = append(interventions, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return interventions, nil
}

// Update сохраняет изменяемые поля вмешательства (статус, техник, суммы, отметки времени)
func (r *Repository) Update(ctx context.Context, iv *domain.Intervention) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("technician_id", iv.TechnicianID).
		Set("slot_id", iv.SlotID).
		Set("status", iv.Status).
		Set("labor_amount", iv.LaborAmount).
		Set("total_amount", iv.TotalAmount).
		Set("is_paid", iv.IsPaid).
		Set("started_at", iv.StartedAt).
		Set("completed_at", iv.CompletedAt).
		Set("cancelled_at", iv.CancelledAt).
		Set("paid_at", iv.PaidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": iv.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrInterventionNotFound
	}

	return nil
}

// AddPart сохраняет строку использованной запчасти
func (r *Repository) AddPart(ctx context.Context, part *domain.ConsumedPart) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(partsTable).
		Columns("intervention_id", "part_id", "part_name", "quantity", "unit_price", "subtotal").
		Values(part.InterventionID, part.PartID, part.PartName, part.Quantity, part.UnitPrice, part.Subtotal).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddPart - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&part.ID, &part.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: AddPart - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListParts возвращает строки запчастей вмешательства в порядке добавления
func (r *Repository) ListParts(ctx context.Context, interventionID int64) ([]domain.ConsumedPart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(partColumns...).
		From(partsTable).
		Where(squirrel.Eq{"intervention_id": interventionID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListParts - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListParts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	parts := make([]domain.ConsumedPart, 0)
	for rows.Next() {
		var p domain.ConsumedPart
		err := rows.Scan(
			&p.ID,
			&p.InterventionID,
			&p.PartID,
			&p.PartName,
			&p.Quantity,
			&p.UnitPrice,
			&p.Subtotal,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListParts - scan row: %w", ErrScanRow, err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListParts - rows error: %w", ErrScanRow, err)
	}

	return parts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIntervention(row rowScanner) (*domain.Intervention, error) {
	var iv domain.Intervention
	var (
		claimID, requestID, slotID                   sql.NullInt64
		startedAt, completedAt, cancelledAt, paidAt sql.NullTime
	)

	err := row.Scan(
		&iv.ID,
		&claimID,
		&requestID,
		&iv.TechnicianID,
		&slotID,
		&iv.ScheduledAt,
		&iv.Status,
		&iv.LaborAmount,
		&iv.TotalAmount,
		&iv.IsFree,
		&iv.IsPaid,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&paidAt,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	iv.ClaimID = nullInt64(claimID)
	iv.RequestID = nullInt64(requestID)
	iv.SlotID = nullInt64(slotID)
	iv.StartedAt = nullTime(startedAt)
	iv.CompletedAt = nullTime(completedAt)
	iv.CancelledAt = nullTime(cancelledAt)
	iv.PaidAt = nullTime(paidAt)

	return &iv, nil
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
