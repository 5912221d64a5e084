package accept_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("accept_request: request not found")

	// ErrRequestNotPending возвращается, когда заявка уже обработана или отменена
	ErrRequestNotPending = errors.New("accept_request: request is not pending")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("accept_request: slot not found")

	// ErrSlotAlreadyReserved возвращается, когда слот уже занят другим вмешательством
	ErrSlotAlreadyReserved = errors.New("accept_request: slot already reserved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_request: internal error")
)
