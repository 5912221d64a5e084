package catalogservice

import "time"

// Claim рекламация клиента из CatalogService
type Claim struct {
	ID                 int64  `json:"id"`
	ClientID           int64  `json:"client_id"`
	PurchasedArticleID int64  `json:"purchased_article_id"`
	Status             string `json:"status"`
}

// PurchasedArticle купленный клиентом товар с данными о гарантии
type PurchasedArticle struct {
	ID             int64     `json:"id"`
	ClientID       int64     `json:"client_id"`
	ArticleID      int64     `json:"article_id"`
	SerialNumber   string    `json:"serial_number"`
	PurchaseDate   time.Time `json:"purchase_date"`
	WarrantyMonths int       `json:"warranty_months"`
}

// WarrantyEndsAt момент окончания гарантии (не включительно)
func (a *PurchasedArticle) WarrantyEndsAt() time.Time {
	return a.PurchaseDate.AddDate(0, a.WarrantyMonths, 0)
}
