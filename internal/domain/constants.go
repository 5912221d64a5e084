package domain

// MaxSlotDurationMinutes верхняя граница длительности слота (8 часов)
const MaxSlotDurationMinutes = 480

// Ограничения входных данных
const (
	MaxMotiveLength         = 255
	MaxCommentLength        = 1000
	MaxRefusalReasonLength  = 500
	MaxMovementReasonLength = 255
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
