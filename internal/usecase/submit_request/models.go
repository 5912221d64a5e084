package submit_request

import "time"

// Request модель запроса на создание заявки
type Request struct {
	ClientID    int64
	Motive      string
	DesiredDate time.Time
	SlotID      *int64  // выбранный слот (опционально)
	ClaimID     *int64  // рекламация (опционально)
	Comment     *string // комментарий (опционально)
}

// Response модель созданной заявки
type Response struct {
	ID                    int64
	ClientID              int64
	Motive                string
	DesiredDate           time.Time
	SlotID                *int64
	ClaimID               *int64
	Comment               *string
	Status                string
	AssignedResponsableID *int64
	CreatedAt             time.Time
}
