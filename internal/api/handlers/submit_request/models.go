package submit_request

import (
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	submitRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/submit_request"
)

// SubmitRequestRequest HTTP request model
type SubmitRequestRequest struct {
	Motive      string  `json:"motive"`
	DesiredDate string  `json:"desiredDate"` // "2024-03-04"
	SlotID      *int64  `json:"slotId,omitempty"`
	ClaimID     *int64  `json:"claimId,omitempty"`
	Comment     *string `json:"comment,omitempty"`
}

// RequestResponse HTTP response model
type RequestResponse struct {
	ID                    int64     `json:"id"`
	ClientID              int64     `json:"clientId"`
	Motive                string    `json:"motive"`
	DesiredDate           string    `json:"desiredDate"`
	SlotID                *int64    `json:"slotId,omitempty"`
	ClaimID               *int64    `json:"claimId,omitempty"`
	Comment               *string   `json:"comment,omitempty"`
	Status                string    `json:"status"`
	AssignedResponsableID *int64    `json:"assignedResponsableId,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitRequestRequest) ToUseCaseRequest(clientID int64) (*submitRequest.Request, error) {
	desiredDate, err := time.Parse(domain.DateFormat, r.DesiredDate)
	if err != nil {
		return nil, err
	}

	return &submitRequest.Request{
		ClientID:    clientID,
		Motive:      r.Motive,
		DesiredDate: desiredDate,
		SlotID:      r.SlotID,
		ClaimID:     r.ClaimID,
		Comment:     r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *submitRequest.Response) *RequestResponse {
	return &RequestResponse{
		ID:                    resp.ID,
		ClientID:              resp.ClientID,
		Motive:                resp.Motive,
		DesiredDate:           resp.DesiredDate.Format(domain.DateFormat),
		SlotID:                resp.SlotID,
		ClaimID:               resp.ClaimID,
		Comment:               resp.Comment,
		Status:                resp.Status,
		AssignedResponsableID: resp.AssignedResponsableID,
		CreatedAt:             resp.CreatedAt,
	}
}
