package accept_request

import "time"

// Request модель запроса на принятие заявки
type Request struct {
	RequestID     int64
	SlotID        int64
	ResponsableID int64 // кто принимает решение (для журнала)
}

// Response модель результата принятия заявки
type Response struct {
	RequestID      int64
	Status         string
	SlotID         int64
	InterventionID int64
	TechnicianID   int64
	ScheduledAt    time.Time
	IsFree         bool
}
