package part

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/psqlbuilder"
)

const (
	table          = "parts"
	movementsTable = "stock_movements"
)

var columns = []string{
	"id",
	"name",
	"reference",
	"unit_price",
	"stock",
	"min_stock",
	"created_at",
	"updated_at",
}

var movementColumns = []string{
	"id",
	"part_id",
	"delta",
	"stock_before",
	"stock_after",
	"kind",
	"reason",
	"intervention_id",
	"created_at",
}

// Repository склад запчастей и журнал движений
// Остаток меняется только условным UPDATE, журнал только дополняется
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория склада
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает запчасть по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Part, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanPart(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan part: %w", ErrScanRow, err)
	}

	return p, nil
}

// List возвращает запчасти по имени; lowStockOnly оставляет только stock <= min_stock
func (r *Repository) List(ctx context.Context, lowStockOnly bool) ([]*domain.Part, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)
	if lowStockOnly {
		selectBuilder = selectBuilder.Where("stock <= min_stock")
	}

	query, args, err := selectBuilder.OrderBy("name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	parts := make([]*domain.Part, 0)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return parts, nil
}

// Consume атомарно списывает quantity единиц и пишет движение out
// Проверка остатка и списание выполняются одним UPDATE, поэтому
// конкурентные списания не могут увести остаток в минус
func (r *Repository) Consume(ctx context.Context, partID int64, quantity int, interventionID *int64) (*domain.PartConsumption, error) {
	p, err := r.applyDelta(ctx, "Consume", partID, -quantity,
		squirrel.GtOrEq{"stock": quantity}, ErrInsufficientStock)
	if err != nil {
		return nil, err
	}

	reason := "consumed by intervention"
	movement := domain.NewStockMovement(partID, domain.MovementOut, -quantity, p.Stock, reason)
	movement.InterventionID = interventionID
	if err := r.insertMovement(ctx, movement); err != nil {
		return nil, err
	}

	return &domain.PartConsumption{Part: *p, Movement: *movement}, nil
}

// Restock приходует quantity единиц и пишет движение in
func (r *Repository) Restock(ctx context.Context, partID int64, quantity int, reason string) (*domain.PartConsumption, error) {
	p, err := r.applyDelta(ctx, "Restock", partID, quantity, nil, nil)
	if err != nil {
		return nil, err
	}

	movement := domain.NewStockMovement(partID, domain.MovementIn, quantity, p.Stock, reason)
	if err := r.insertMovement(ctx, movement); err != nil {
		return nil, err
	}

	return &domain.PartConsumption{Part: *p, Movement: *movement}, nil
}

// Adjust корректирует остаток на delta (со знаком) и пишет движение adjustment
// Корректировка, уводящая остаток в минус, отклоняется с ErrInsufficientStock
func (r *Repository) Adjust(ctx context.Context, partID int64, delta int, reason string) (*domain.PartConsumption, error) {
	p, err := r.applyDelta(ctx, "Adjust", partID, delta,
		squirrel.Expr("stock + ? >= 0", delta), ErrInsufficientStock)
	if err != nil {
		return nil, err
	}

	movement := domain.NewStockMovement(partID, domain.MovementAdjustment, delta, p.Stock, reason)
	if err := r.insertMovement(ctx, movement); err != nil {
		return nil, err
	}

	return &domain.PartConsumption{Part: *p, Movement: *movement}, nil
}

// Movements возвращает журнал движений запчасти, новые первыми
func (r *Repository) Movements(ctx context.Context, partID int64, limit uint64) ([]*domain.StockMovement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(movementColumns...).
		From(movementsTable).
		Where(squirrel.Eq{"part_id": partID}).
		OrderBy("id DESC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Movements - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Movements - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	movements := make([]*domain.StockMovement, 0)
	for rows.Next() {
		var m domain.StockMovement
		var interventionID sql.NullInt64
		err := rows.Scan(
			&m.ID,
			&m.PartID,
			&m.Delta,
			&m.StockBefore,
			&m.StockAfter,
			&m.Kind,
			&m.Reason,
			&interventionID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: Movements - scan row: %w", ErrScanRow, err)
		}
		if interventionID.Valid {
			id := interventionID.Int64
			m.InterventionID = &id
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Movements - rows error: %w", ErrScanRow, err)
	}

	return movements, nil
}

// applyDelta выполняет UPDATE parts SET stock = stock + delta с дополнительным условием
// Если строка не обновилась: ErrPartNotFound для несуществующей запчасти, иначе conflictErr
func (r *Repository) applyDelta(ctx context.Context, op string, partID int64, delta int, guard squirrel.Sqlizer, conflictErr error) (*domain.Part, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": partID})
	if guard != nil {
		updateBuilder = updateBuilder.Where(guard)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	p, err := scanPart(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, partID); getErr != nil {
			return nil, getErr
		}
		if conflictErr == nil {
			return nil, ErrPartNotFound
		}
		return nil, conflictErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	return p, nil
}

func (r *Repository) insertMovement(ctx context.Context, m *domain.StockMovement) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(movementsTable).
		Columns("part_id", "delta", "stock_before", "stock_after", "kind", "reason", "intervention_id").
		Values(m.PartID, m.Delta, m.StockBefore, m.StockAfter, m.Kind, m.Reason, m.InterventionID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertMovement - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("%w: insertMovement - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPart(row rowScanner) (*domain.Part, error) {
	var p domain.Part
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Reference,
		&p.UnitPrice,
		&p.Stock,
		&p.MinStock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
