package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	generateSlots "github.com/m04kA/SMC-ServiceDesk/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-ServiceDesk/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	DateFrom        string `json:"dateFrom"`  // "2024-03-01"
	DateTo          string `json:"dateTo"`    // "2024-03-07"
	HourStart       string `json:"hourStart"` // "08:00"
	HourEnd         string `json:"hourEnd"`   // "12:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	TechnicianID int64 `json:"technicianId"`
	Created      int   `json:"created"`
	Skipped      int   `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(technicianID int64) (*generateSlots.Request, error) {
	dateFrom, err := time.Parse(domain.DateFormat, r.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("dateFrom: %w", err)
	}
	dateTo, err := time.Parse(domain.DateFormat, r.DateTo)
	if err != nil {
		return nil, fmt.Errorf("dateTo: %w", err)
	}
	hourStart, err := types.NewTimeStringFromString(r.HourStart)
	if err != nil {
		return nil, fmt.Errorf("hourStart: %w", err)
	}
	hourEnd, err := types.NewTimeStringFromString(r.HourEnd)
	if err != nil {
		return nil, fmt.Errorf("hourEnd: %w", err)
	}

	return &generateSlots.Request{
		TechnicianID:    technicianID,
		DateFrom:        dateFrom,
		DateTo:          dateTo,
		HourStart:       hourStart,
		HourEnd:         hourEnd,
		DurationMinutes: r.DurationMinutes,
	}, nil
}
