package submit_request

import "errors"

var (
	// ErrActiveRequestExists возвращается, когда у клиента уже есть активная заявка
	ErrActiveRequestExists = errors.New("submit_request: client already has an active request")

	// ErrSlotNotFound возвращается, когда выбранный слот не найден
	ErrSlotNotFound = errors.New("submit_request: slot not found")

	// ErrSlotAlreadyReserved возвращается, когда выбранный слот уже занят
	ErrSlotAlreadyReserved = errors.New("submit_request: slot already reserved")

	// ErrClaimNotFound возвращается, когда рекламация не найдена
	ErrClaimNotFound = errors.New("submit_request: claim not found")

	// ErrAccessDenied возвращается, когда рекламация принадлежит другому клиенту
	ErrAccessDenied = errors.New("submit_request: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_request: internal error")
)
