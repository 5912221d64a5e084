package domain

import "time"

// Slot временной слот техника
// Зарезервированный слот всегда ссылается ровно на одно вмешательство (InterventionID)
type Slot struct {
	ID             int64
	TechnicianID   int64
	StartAt        time.Time
	EndAt          time.Time
	IsReserved     bool
	InterventionID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFree возвращает true, если слот не зарезервирован
func (s *Slot) IsFree() bool {
	return !s.IsReserved
}

// DurationMinutes длительность слота в минутах
func (s *Slot) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt) / time.Minute)
}

// Overlaps возвращает true, если интервалы слотов пересекаются
// Соприкасающиеся интервалы (конец одного = начало другого) не пересекаются
func (s *Slot) Overlaps(startAt, endAt time.Time) bool {
	return s.StartAt.Before(endAt) && s.EndAt.After(startAt)
}

// SameRange возвращает true, если слот занимает ровно этот интервал
func (s *Slot) SameRange(startAt, endAt time.Time) bool {
	return s.StartAt.Equal(startAt) && s.EndAt.Equal(endAt)
}

// SlotsFilter фильтр для поиска слотов
type SlotsFilter struct {
	TechnicianID *int64    // nil - все техники
	From         time.Time // начало окна (включительно)
	To           time.Time // конец окна (исключительно)
	FreeOnly     bool      // только свободные слоты
}
