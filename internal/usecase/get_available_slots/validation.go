package get_available_slots

import (
	"fmt"
	"time"
)

// normalizeRequest проверяет окно поиска и подставляет значения по умолчанию
func normalizeRequest(req *Request, now time.Time) (time.Time, time.Time, error) {
	if req.TechnicianID != nil && *req.TechnicianID <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	from := req.From
	if from.IsZero() {
		from = now
	}

	to := req.To
	if to.IsZero() {
		to = from.AddDate(0, 0, DefaultWindowDays)
	}

	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if to.Sub(from) > MaxWindowDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: at most %d days", ErrWindowTooWide, MaxWindowDays)
	}

	// Клиенту не показываем уже начавшиеся слоты
	if req.FreeOnly && from.Before(now) {
		from = now
	}

	return from, to, nil
}
