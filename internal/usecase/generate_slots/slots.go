package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// buildSlots нарезает окна [hourStart, hourEnd) каждого дня диапазона на слоты длительностью duration
// Хвост короче duration отбрасывается
func buildSlots(req *Request, loc *time.Location) ([]*domain.Slot, error) {
	duration := time.Duration(req.DurationMinutes) * time.Minute
	slots := make([]*domain.Slot, 0)

	for day := dateOnly(req.DateFrom); !day.After(dateOnly(req.DateTo)); day = day.AddDate(0, 0, 1) {
		windowStart, err := req.HourStart.On(day, loc)
		if err != nil {
			return nil, err
		}
		windowEnd, err := req.HourEnd.On(day, loc)
		if err != nil {
			return nil, err
		}

		for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(duration) {
			slots = append(slots, &domain.Slot{
				TechnicianID: req.TechnicianID,
				StartAt:      start,
				EndAt:        start.Add(duration),
			})
		}
	}

	return slots, nil
}

// conflicts true, если кандидат совпадает или пересекается с одним из существующих слотов
func conflicts(candidate *domain.Slot, existing []*domain.Slot) bool {
	for _, s := range existing {
		if s.Overlaps(candidate.StartAt, candidate.EndAt) {
			return true
		}
	}
	return false
}
