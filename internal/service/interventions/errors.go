package interventions

import "errors"

var (
	// ErrInterventionNotFound возвращается, когда вмешательство не найдено
	ErrInterventionNotFound = errors.New("intervention not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotAlreadyReserved возвращается, когда слот уже занят
	ErrSlotAlreadyReserved = errors.New("slot already reserved")

	// ErrPartNotFound возвращается, когда запчасть не найдена
	ErrPartNotFound = errors.New("part not found")

	// ErrInsufficientStock возвращается, когда на складе не хватает запчастей
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid intervention status transition")

	// ErrInterventionClosed возвращается при изменении завершенного или отмененного вмешательства
	ErrInterventionClosed = errors.New("intervention is closed")

	// ErrInvalidState возвращается, когда операция недоступна в текущем статусе
	ErrInvalidState = errors.New("operation is not allowed in the current state")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
