package domain

import "time"

// RequestStatus статус заявки клиента на запись
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusConfirmed RequestStatus = "confirmed"
	RequestStatusRefused   RequestStatus = "refused"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// RequestStatuses все допустимые статусы заявки
var RequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusConfirmed,
	RequestStatusRefused,
	RequestStatusCancelled,
}

// IsValid проверяет, что статус входит в закрытый список
func (s RequestStatus) IsValid() bool {
	for _, valid := range RequestStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// BookingRequest заявка клиента на выезд/визит техника
type BookingRequest struct {
	ID          int64
	ClientID    int64
	Motive      string
	DesiredDate time.Time
	ClaimID     *int64 // ссылка на существующую рекламацию (опционально)
	SlotID      *int64 // выбранный клиентом слот; после принятия - фактический слот
	Comment     *string
	Status      RequestStatus

	AssignedResponsableID *int64
	InterventionID        *int64

	RefusalReason *string
	ProcessedAt   *time.Time
	CancelledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending возвращает true, если заявка ожидает решения ответственного
func (r *BookingRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// CanBeCancelledBy возвращает true, если клиент может отменить заявку
func (r *BookingRequest) CanBeCancelledBy(clientID int64) bool {
	return r.ClientID == clientID && r.IsPending()
}

// PendingRequestsFilter фильтр для списка заявок, ожидающих решения
type PendingRequestsFilter struct {
	AssignedResponsableID *int64 // nil - все заявки
}
