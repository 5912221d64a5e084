package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// ListClientRequestsRequest запрос на получение заявок клиента
type ListClientRequestsRequest struct {
	ClientID int64
	Status   *string
}

// ListPendingRequest запрос на получение заявок, ожидающих решения
type ListPendingRequest struct {
	AssignedToMe bool // только заявки, назначенные текущему ответственному
}

// Response модели

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID                    int64   `json:"id"`
	ClientID              int64   `json:"clientId"`
	Motive                string  `json:"motive"`
	DesiredDate           string  `json:"desiredDate"` // "2024-03-04"
	ClaimID               *int64  `json:"claimId,omitempty"`
	SlotID                *int64  `json:"slotId,omitempty"`
	Comment               *string `json:"comment,omitempty"`
	Status                string  `json:"status"`
	AssignedResponsableID *int64  `json:"assignedResponsableId,omitempty"`
	InterventionID        *int64  `json:"interventionId,omitempty"`
	RefusalReason         *string `json:"refusalReason,omitempty"`

	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.BookingRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	return &RequestResponse{
		ID:                    r.ID,
		ClientID:              r.ClientID,
		Motive:                r.Motive,
		DesiredDate:           r.DesiredDate.Format(domain.DateFormat),
		ClaimID:               r.ClaimID,
		SlotID:                r.SlotID,
		Comment:               r.Comment,
		Status:                string(r.Status),
		AssignedResponsableID: r.AssignedResponsableID,
		InterventionID:        r.InterventionID,
		RefusalReason:         r.RefusalReason,
		ProcessedAt:           r.ProcessedAt,
		CancelledAt:           r.CancelledAt,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(list []*domain.BookingRequest) *RequestListResponse {
	resp := &RequestListResponse{
		Requests: make([]RequestResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r))
	}
	return resp
}

// ToDomainRequestStatus конвертирует строку в статус заявки
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	s := domain.RequestStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
