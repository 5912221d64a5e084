package refuse_request

import (
	refuseRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/refuse_request"
)

// RefuseRequestRequest HTTP request model
type RefuseRequestRequest struct {
	Reason string `json:"reason"`
}

// RefuseRequestResponse HTTP response model
type RefuseRequestResponse struct {
	RequestID int64  `json:"requestId"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RefuseRequestRequest) ToUseCaseRequest(requestID, responsableID int64) *refuseRequest.Request {
	return &refuseRequest.Request{
		RequestID:     requestID,
		Reason:        r.Reason,
		ResponsableID: responsableID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *refuseRequest.Response) *RefuseRequestResponse {
	return &RefuseRequestResponse{
		RequestID: resp.RequestID,
		Status:    resp.Status,
		Reason:    resp.Reason,
	}
}
