package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part запчасть на складе
type Part struct {
	ID        int64
	Name      string
	Reference string
	UnitPrice decimal.Decimal
	Stock     int
	MinStock  int // порог для списка low-stock

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock возвращает true, если остаток не выше порога
func (p *Part) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// MovementKind тип движения по складу
type MovementKind string

const (
	MovementIn         MovementKind = "in"
	MovementOut        MovementKind = "out"
	MovementAdjustment MovementKind = "adjustment"
)

// StockMovement запись журнала движений склада (только добавление)
// Инвариант: StockAfter = StockBefore + Delta
type StockMovement struct {
	ID             int64
	PartID         int64
	Delta          int
	StockBefore    int
	StockAfter     int
	Kind           MovementKind
	Reason         string
	InterventionID *int64
	CreatedAt      time.Time
}

// NewStockMovement создает запись движения по остатку после изменения
func NewStockMovement(partID int64, kind MovementKind, delta, stockAfter int, reason string) *StockMovement {
	return &StockMovement{
		PartID:      partID,
		Delta:       delta,
		StockBefore: stockAfter - delta,
		StockAfter:  stockAfter,
		Kind:        kind,
		Reason:      reason,
	}
}

// IsConsistent проверяет инвариант журнала
func (m *StockMovement) IsConsistent() bool {
	return m.StockAfter == m.StockBefore+m.Delta && m.StockAfter >= 0
}

// PartConsumption результат списания запчасти
type PartConsumption struct {
	Part     Part // состояние после списания
	Movement StockMovement
}
