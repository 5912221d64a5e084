package userservice

import "errors"

var (
	// ErrNoResponsableAvailable возвращается, когда свободного ответственного нет
	ErrNoResponsableAvailable = errors.New("no responsable available")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и заявка остаётся без ответственного
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
