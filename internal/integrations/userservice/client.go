package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAvailableResponsable получает наименее загруженного доступного ответственного
func (c *Client) GetAvailableResponsable(ctx context.Context) (*Responsable, error) {
	url := fmt.Sprintf("%s/internal/responsables/available", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent:
		return nil, ErrNoResponsableAvailable
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var responsable Responsable
	if err := json.NewDecoder(resp.Body).Decode(&responsable); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if responsable.ID <= 0 {
		return nil, fmt.Errorf("%w: responsable id is missing", ErrInvalidResponse)
	}

	return &responsable, nil
}

// PickAvailableResponsable выбирает ответственного для новой заявки с graceful degradation
// Возвращает (nil, nil), если свободных ответственных нет, и ErrServiceDegraded,
// если UserService недоступен; в обоих случаях заявка создаётся без назначения
func (c *Client) PickAvailableResponsable(ctx context.Context) (*int64, error) {
	responsable, err := c.GetAvailableResponsable(ctx)
	if err != nil {
		if errors.Is(err, ErrNoResponsableAvailable) {
			c.log.Warn("No responsable available, request stays unassigned")
			return nil, nil
		}

		c.log.Error("UserService unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: error=%v", ErrServiceDegraded, err)
	}

	c.log.Info("Picked responsable id=%d (open_requests=%d)", responsable.ID, responsable.OpenRequests)
	id := responsable.ID
	return &id, nil
}
