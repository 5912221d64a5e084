package refuse_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("refuse_request: request not found")

	// ErrRequestNotPending возвращается, когда заявка уже обработана или отменена
	ErrRequestNotPending = errors.New("refuse_request: request is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("refuse_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("refuse_request: internal error")
)
