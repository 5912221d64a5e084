package part

import "errors"

var (
	// ErrPartNotFound возвращается, когда запчасть не найдена
	ErrPartNotFound = errors.New("part.repository: part not found")

	// ErrInsufficientStock возвращается, когда остатка не хватает для списания
	ErrInsufficientStock = errors.New("part.repository: insufficient stock")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("part.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("part.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("part.repository: failed to scan row")
)
