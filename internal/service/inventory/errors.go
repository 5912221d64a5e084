package inventory

import "errors"

var (
	// ErrPartNotFound возвращается, когда запчасть не найдена
	ErrPartNotFound = errors.New("part not found")

	// ErrInsufficientStock возвращается, когда операция увела бы остаток в минус
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
