package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// validateRequest проверяет параметры генерации
func validateRequest(req *Request, maxDays int) error {
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidSchedule)
	}

	if req.DateFrom.IsZero() || req.DateTo.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", ErrInvalidSchedule)
	}

	if dateOnly(req.DateFrom).After(dateOnly(req.DateTo)) {
		return fmt.Errorf("%w: dateFrom is after dateTo", ErrInvalidSchedule)
	}

	if days := daysInclusive(req.DateFrom, req.DateTo); maxDays > 0 && days > maxDays {
		return fmt.Errorf("%w: range of %d days exceeds the limit of %d", ErrInvalidSchedule, days, maxDays)
	}

	if err := req.HourStart.Validate(); err != nil {
		return fmt.Errorf("%w: hourStart: %v", ErrInvalidSchedule, err)
	}
	if err := req.HourEnd.Validate(); err != nil {
		return fmt.Errorf("%w: hourEnd: %v", ErrInvalidSchedule, err)
	}

	if !req.HourStart.IsBefore(req.HourEnd) {
		return fmt.Errorf("%w: hourStart %s must be before hourEnd %s", ErrInvalidSchedule, req.HourStart, req.HourEnd)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidSchedule)
	}
	if req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidSchedule, domain.MaxSlotDurationMinutes)
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysInclusive(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours()/24) + 1
}
