package submit_request

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	req.Motive = strings.TrimSpace(req.Motive)
	if req.Motive == "" {
		return fmt.Errorf("%w: motive is required", ErrInvalidInput)
	}
	if len([]rune(req.Motive)) > domain.MaxMotiveLength {
		return fmt.Errorf("%w: motive is longer than %d characters", ErrInvalidInput, domain.MaxMotiveLength)
	}

	if req.DesiredDate.IsZero() {
		return fmt.Errorf("%w: desiredDate is required", ErrInvalidInput)
	}
	if isDateInPast(req.DesiredDate, now) {
		return fmt.Errorf("%w: desiredDate is in the past", ErrInvalidInput)
	}

	if req.SlotID != nil && *req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.ClaimID != nil && *req.ClaimID <= 0 {
		return fmt.Errorf("%w: claimID must be positive", ErrInvalidInput)
	}

	if req.Comment != nil {
		comment := strings.TrimSpace(*req.Comment)
		if len([]rune(comment)) > domain.MaxCommentLength {
			return fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
		}
		if comment == "" {
			req.Comment = nil
		} else {
			req.Comment = &comment
		}
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
