package intervention

import "errors"

var (
	// ErrInterventionNotFound возвращается, когда вмешательство не найдено
	ErrInterventionNotFound = errors.New("intervention.repository: intervention not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("intervention.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("intervention.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("intervention.repository: failed to scan row")
)
