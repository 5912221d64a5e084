package generate_slots

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректных параметрах генерации
	ErrInvalidSchedule = errors.New("generate_slots: invalid schedule")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
