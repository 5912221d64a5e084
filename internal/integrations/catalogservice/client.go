package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService (рекламации и купленные товары)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClaim получает рекламацию по ID
func (c *Client) GetClaim(ctx context.Context, claimID int64) (*Claim, error) {
	var claim Claim
	url := fmt.Sprintf("%s/internal/claims/%d", c.baseURL, claimID)
	if err := c.get(ctx, url, ErrClaimNotFound, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetPurchasedArticle получает купленный товар по ID
func (c *Client) GetPurchasedArticle(ctx context.Context, purchasedArticleID int64) (*PurchasedArticle, error) {
	var article PurchasedArticle
	url := fmt.Sprintf("%s/internal/purchased-articles/%d", c.baseURL, purchasedArticleID)
	if err := c.get(ctx, url, ErrPurchasedArticleNotFound, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CatalogService request failed: url=%s, error=%v", url, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
