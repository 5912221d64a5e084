package accept_request

import (
	"time"

	acceptRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/accept_request"
)

// AcceptRequestRequest HTTP request model
type AcceptRequestRequest struct {
	SlotID int64 `json:"slotId"`
}

// AcceptRequestResponse HTTP response model
type AcceptRequestResponse struct {
	RequestID      int64     `json:"requestId"`
	Status         string    `json:"status"`
	SlotID         int64     `json:"slotId"`
	InterventionID int64     `json:"interventionId"`
	TechnicianID   int64     `json:"technicianId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	IsFree         bool      `json:"isFree"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AcceptRequestRequest) ToUseCaseRequest(requestID, responsableID int64) *acceptRequest.Request {
	return &acceptRequest.Request{
		RequestID:     requestID,
		SlotID:        r.SlotID,
		ResponsableID: responsableID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *acceptRequest.Response) *AcceptRequestResponse {
	return &AcceptRequestResponse{
		RequestID:      resp.RequestID,
		Status:         resp.Status,
		SlotID:         resp.SlotID,
		InterventionID: resp.InterventionID,
		TechnicianID:   resp.TechnicianID,
		ScheduledAt:    resp.ScheduledAt,
		IsFree:         resp.IsFree,
	}
}
