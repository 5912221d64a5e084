package get_available_slots

import "time"

const (
	// DefaultWindowDays окно поиска, если конец не указан
	DefaultWindowDays = 7
	// MaxWindowDays максимальная ширина окна поиска
	MaxWindowDays = 31
)

// Request модель запроса на получение слотов
type Request struct {
	TechnicianID *int64    // nil - слоты всех техников
	From         time.Time // начало окна
	To           time.Time // конец окна (не включительно); нулевое значение - From + DefaultWindowDays
	FreeOnly     bool      // только свободные и ещё не начавшиеся слоты
}

// Response модель ответа со списком слотов
type Response struct {
	From  time.Time
	To    time.Time
	Slots []Slot
}

// Slot модель временного слота
type Slot struct {
	ID              int64
	TechnicianID    int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	IsReserved      bool
}
