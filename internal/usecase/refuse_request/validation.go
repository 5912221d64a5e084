package refuse_request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// validateRequestID проверяет идентификатор заявки до обращения к хранилищу
func validateRequestID(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	return nil
}

// validateReason нормализует и проверяет причину отказа
// Вызывается после проверки статуса: отказ по уже обработанной заявке даёт конфликт, а не ошибку ввода
func validateReason(req *Request) error {
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxRefusalReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxRefusalReasonLength)
	}

	return nil
}
