package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

const (
	// DefaultMovementsLimit размер истории движений по умолчанию
	DefaultMovementsLimit = 50
	// MaxMovementsLimit максимальный размер истории движений за запрос
	MaxMovementsLimit = 500
)

// Request модели

// RestockRequest запрос на приход запчастей
type RestockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}

// AdjustRequest запрос на корректировку остатка (инвентаризация)
type AdjustRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// Response модели

// PartResponse ответ с данными запчасти
type PartResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Reference string          `json:"reference"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"minStock"`
	LowStock  bool            `json:"lowStock"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PartListResponse ответ со списком запчастей
type PartListResponse struct {
	Parts []PartResponse `json:"parts"`
}

// MovementResponse запись журнала движений
type MovementResponse struct {
	ID             int64     `json:"id"`
	PartID         int64     `json:"partId"`
	Kind           string    `json:"kind"`
	Delta          int       `json:"delta"`
	StockBefore    int       `json:"stockBefore"`
	StockAfter     int       `json:"stockAfter"`
	Reason         string    `json:"reason,omitempty"`
	InterventionID *int64    `json:"interventionId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MovementListResponse ответ с историей движений
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// StockChangeResponse результат прихода или корректировки
type StockChangeResponse struct {
	Part     PartResponse     `json:"part"`
	Movement MovementResponse `json:"movement"`
}

// Методы конвертации

// FromDomainPart конвертирует domain модель в DTO
func FromDomainPart(p *domain.Part) PartResponse {
	return PartResponse{
		ID:        p.ID,
		Name:      p.Name,
		Reference: p.Reference,
		UnitPrice: p.UnitPrice,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		LowStock:  p.IsLowStock(),
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainPartList конвертирует список domain моделей в DTO
func FromDomainPartList(parts []*domain.Part) *PartListResponse {
	resp := &PartListResponse{Parts: make([]PartResponse, 0, len(parts))}
	for _, p := range parts {
		resp.Parts = append(resp.Parts, FromDomainPart(p))
	}
	return resp
}

// FromDomainMovement конвертирует запись журнала в DTO
func FromDomainMovement(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		PartID:         m.PartID,
		Kind:           string(m.Kind),
		Delta:          m.Delta,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		Reason:         m.Reason,
		InterventionID: m.InterventionID,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomainMovementList конвертирует журнал в DTO
func FromDomainMovementList(list []*domain.StockMovement) *MovementListResponse {
	resp := &MovementListResponse{Movements: make([]MovementResponse, 0, len(list))}
	for _, m := range list {
		resp.Movements = append(resp.Movements, FromDomainMovement(m))
	}
	return resp
}

// FromDomainConsumption конвертирует результат изменения остатка в DTO
func FromDomainConsumption(c *domain.PartConsumption) *StockChangeResponse {
	return &StockChangeResponse{
		Part:     FromDomainPart(&c.Part),
		Movement: FromDomainMovement(&c.Movement),
	}
}
