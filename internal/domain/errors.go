package domain

import "errors"

var (
	// ErrInvalidTransition недопустимый переход состояния вмешательства
	ErrInvalidTransition = errors.New("domain: invalid intervention status transition")

	// ErrInterventionClosed изменение вмешательства в терминальном статусе
	ErrInterventionClosed = errors.New("domain: intervention is closed")

	// ErrNegativeAmount отрицательная сумма
	ErrNegativeAmount = errors.New("domain: amount must not be negative")

	// ErrInvalidQuantity количество должно быть положительным
	ErrInvalidQuantity = errors.New("domain: quantity must be positive")
)
