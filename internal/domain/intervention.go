package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InterventionStatus статус вмешательства
type InterventionStatus string

const (
	InterventionStatusPlanned    InterventionStatus = "planned"
	InterventionStatusInProgress InterventionStatus = "in_progress"
	InterventionStatusCompleted  InterventionStatus = "completed"
	InterventionStatusCancelled  InterventionStatus = "cancelled"
)

// InterventionStatuses все допустимые статусы вмешательства
var InterventionStatuses = []InterventionStatus{
	InterventionStatusPlanned,
	InterventionStatusInProgress,
	InterventionStatusCompleted,
	InterventionStatusCancelled,
}

// IsValid проверяет, что статус входит в закрытый список
func (s InterventionStatus) IsValid() bool {
	for _, valid := range InterventionStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s InterventionStatus) IsTerminal() bool {
	return s == InterventionStatusCompleted || s == InterventionStatusCancelled
}

// allowedTransitions граф переходов состояний
var allowedTransitions = map[InterventionStatus][]InterventionStatus{
	InterventionStatusPlanned:    {InterventionStatusInProgress, InterventionStatusCancelled},
	InterventionStatusInProgress: {InterventionStatusCompleted, InterventionStatusCancelled},
}

// CanTransitionTo возвращает true, если переход from -> to допустим
func (s InterventionStatus) CanTransitionTo(to InterventionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ConsumedPart строка использованной запчасти
// Subtotal фиксируется по цене на момент использования
type ConsumedPart struct {
	ID             int64
	InterventionID int64
	PartID         int64
	PartName       string
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	CreatedAt      time.Time
}

// NewConsumedPart создает строку запчасти с рассчитанным подытогом
func NewConsumedPart(interventionID, partID int64, partName string, quantity int, unitPrice decimal.Decimal) (*ConsumedPart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &ConsumedPart{
		InterventionID: interventionID,
		PartID:         partID,
		PartName:       partName,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		Subtotal:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Intervention выезд/визит техника по рекламации
type Intervention struct {
	ID           int64
	ClaimID      *int64
	RequestID    *int64
	TechnicianID int64
	SlotID       *int64
	ScheduledAt  time.Time
	Status       InterventionStatus

	LaborAmount decimal.Decimal
	Parts       []ConsumedPart
	TotalAmount decimal.Decimal

	// IsFree определяется один раз при создании (гарантия) и больше не пересчитывается
	IsFree bool
	IsPaid bool

	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	PaidAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewIntervention создает вмешательство в статусе planned
func NewIntervention(technicianID int64, scheduledAt time.Time, isFree bool) *Intervention {
	return &Intervention{
		TechnicianID: technicianID,
		ScheduledAt:  scheduledAt,
		Status:       InterventionStatusPlanned,
		LaborAmount:  decimal.Zero,
		TotalAmount:  decimal.Zero,
		IsFree:       isFree,
	}
}

// IsClosed возвращает true для терминальных статусов
func (i *Intervention) IsClosed() bool {
	return i.Status.IsTerminal()
}

// PartsAmount сумма подытогов по запчастям
func (i *Intervention) PartsAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range i.Parts {
		sum = sum.Add(p.Subtotal)
	}
	return sum
}

// ComputeTotal total = isFree ? 0 : labor + Σ subtotal
func (i *Intervention) ComputeTotal() decimal.Decimal {
	if i.IsFree {
		return decimal.Zero
	}
	return i.LaborAmount.Add(i.PartsAmount())
}

// RecalculateTotal пересчитывает и сохраняет итог в TotalAmount
func (i *Intervention) RecalculateTotal() {
	i.TotalAmount = i.ComputeTotal()
}

// Start planned -> in_progress
func (i *Intervention) Start(now time.Time) error {
	if err := i.transition(InterventionStatusInProgress); err != nil {
		return err
	}
	i.StartedAt = &now
	return nil
}

// Complete in_progress -> completed, фиксирует итоговую сумму
func (i *Intervention) Complete(now time.Time) error {
	if err := i.transition(InterventionStatusCompleted); err != nil {
		return err
	}
	i.RecalculateTotal()
	i.CompletedAt = &now
	return nil
}

// Cancel planned|in_progress -> cancelled
func (i *Intervention) Cancel(now time.Time) error {
	if err := i.transition(InterventionStatusCancelled); err != nil {
		return err
	}
	i.CancelledAt = &now
	return nil
}

// AddPart добавляет строку запчасти и пересчитывает итог
func (i *Intervention) AddPart(part ConsumedPart) error {
	if i.IsClosed() {
		return ErrInterventionClosed
	}
	if part.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Parts = append(i.Parts, part)
	i.RecalculateTotal()
	return nil
}

// EnsureOpen возвращает ErrInterventionClosed для терминальных статусов
func (i *Intervention) EnsureOpen() error {
	if i.IsClosed() {
		return ErrInterventionClosed
	}
	return nil
}

// SetLabor устанавливает стоимость работ и пересчитывает итог
func (i *Intervention) SetLabor(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if i.IsClosed() {
		return ErrInterventionClosed
	}
	i.LaborAmount = amount
	i.RecalculateTotal()
	return nil
}

// Reassign переназначает техника
func (i *Intervention) Reassign(technicianID int64) error {
	if i.IsClosed() {
		return ErrInterventionClosed
	}
	i.TechnicianID = technicianID
	return nil
}

// IsAssignedTo возвращает true, если вмешательство назначено технику
func (i *Intervention) IsAssignedTo(technicianID int64) bool {
	return i.TechnicianID == technicianID
}

func (i *Intervention) transition(to InterventionStatus) error {
	if !i.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, to)
	}
	i.Status = to
	return nil
}

// InterventionsFilter фильтр списка вмешательств
type InterventionsFilter struct {
	TechnicianID *int64
	Status       *InterventionStatus
	From         *time.Time
	To           *time.Time
}
