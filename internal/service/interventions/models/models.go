package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid intervention status")
)

// Request модели

// CreateInterventionRequest запрос на прямое создание вмешательства ответственным
// Если указан SlotID, техник и время берутся из слота, а слот резервируется
type CreateInterventionRequest struct {
	ClaimID      *int64     `json:"claimId,omitempty"`
	TechnicianID *int64     `json:"technicianId,omitempty"`
	SlotID       *int64     `json:"slotId,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
}

// AddPartRequest запрос на использование запчасти
type AddPartRequest struct {
	PartID   int64 `json:"partId"`
	Quantity int   `json:"quantity"`
}

// SetLaborRequest запрос на установку стоимости работ
type SetLaborRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ReassignRequest запрос на переназначение техника
type ReassignRequest struct {
	TechnicianID int64 `json:"technicianId"`
}

// ListInterventionsRequest запрос на получение вмешательств техника
type ListInterventionsRequest struct {
	TechnicianID int64
	Status       *string
	From         *time.Time
	To           *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListInterventionsRequest) ToDomainFilter() (domain.InterventionsFilter, error) {
	technicianID := r.TechnicianID
	filter := domain.InterventionsFilter{
		TechnicianID: &technicianID,
		From:         r.From,
		To:           r.To,
	}

	if r.Status != nil {
		status, err := ToDomainInterventionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PartLineResponse строка использованной запчасти
type PartLineResponse struct {
	ID        int64           `json:"id"`
	PartID    int64           `json:"partId"`
	PartName  string          `json:"partName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InterventionResponse ответ с данными вмешательства
type InterventionResponse struct {
	ID           int64              `json:"id"`
	ClaimID      *int64             `json:"claimId,omitempty"`
	RequestID    *int64             `json:"requestId,omitempty"`
	TechnicianID int64              `json:"technicianId"`
	SlotID       *int64             `json:"slotId,omitempty"`
	ScheduledAt  time.Time          `json:"scheduledAt"`
	Status       string             `json:"status"`
	LaborAmount  decimal.Decimal    `json:"laborAmount"`
	Parts        []PartLineResponse `json:"parts"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
	IsFree       bool               `json:"isFree"`
	IsPaid       bool               `json:"isPaid"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InterventionListResponse ответ со списком вмешательств
type InterventionListResponse struct {
	Interventions []InterventionResponse `json:"interventions"`
}

// Методы конвертации

// FromDomainIntervention конвертирует domain модель в DTO
func FromDomainIntervention(iv *domain.Intervention) *InterventionResponse {
	if iv == nil {
		return nil
	}

	resp := &InterventionResponse{
		ID:           iv.ID,
		ClaimID:      iv.ClaimID,
		RequestID:    iv.RequestID,
		TechnicianID: iv.TechnicianID,
		SlotID:       iv.SlotID,
		ScheduledAt:  iv.ScheduledAt,
		Status:       string(iv.Status),
		LaborAmount:  iv.LaborAmount,
		Parts:        make([]PartLineResponse, 0, len(iv.Parts)),
		TotalAmount:  iv.TotalAmount,
		IsFree:       iv.IsFree,
		IsPaid:       iv.IsPaid,
		StartedAt:    iv.StartedAt,
		CompletedAt:  iv.CompletedAt,
		CancelledAt:  iv.CancelledAt,
		PaidAt:       iv.PaidAt,
		CreatedAt:    iv.CreatedAt,
		UpdatedAt:    iv.UpdatedAt,
	}

	for _, p := range iv.Parts {
		resp.Parts = append(resp.Parts, PartLineResponse{
			ID:        p.ID,
			PartID:    p.PartID,
			PartName:  p.PartName,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Subtotal:  p.Subtotal,
		})
	}

	return resp
}

// FromDomainInterventionList конвертирует список domain моделей в DTO
func FromDomainInterventionList(list []*domain.Intervention) *InterventionListResponse {
	resp := &InterventionListResponse{
		Interventions: make([]InterventionResponse, 0, len(list)),
	}
	for _, iv := range list {
		resp.Interventions = append(resp.Interventions, *FromDomainIntervention(iv))
	}
	return resp
}

// ToDomainInterventionStatus конвертирует строку в статус вмешательства
func ToDomainInterventionStatus(status string) (domain.InterventionStatus, error) {
	s := domain.InterventionStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
