package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-ServiceDesk/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Slots []SlotResponse`json:"slots"`
}

// SlotResponse модель временного слота
type SlotResponse struct {
	ID              int64     `json:"id"`
	TechnicianID    int64     `json:"technicianId"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	IsReserved      bool      `json:"isReserved"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			ID:              slot.ID,
			TechnicianID:    slot.TechnicianID,
			StartAt:         slot.StartAt,
			EndAt:           slot.EndAt,
			DurationMinutes: slot.DurationMinutes,
			IsReserved:      slot.IsReserved,
		}
	}

	return &SlotsResponse{
		From:  resp.From,
		To:    resp.To,
		Slots: slots,
	}
}
