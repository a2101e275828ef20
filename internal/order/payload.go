package order

import (
	"encoding/json"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// WebhookItem is one order line as the spreadsheet script reads it.
type WebhookItem struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          json.Number      `json:"price"`
	Category       catalog.Category `json:"category"`
	Image          string           `json:"image"`
	Specifications []string         `json:"specifications"`
	Quantity       int              `json:"quantity"`
}

// WebhookPayload is the body POSTed to the order webhook. The Google Sheets
// script expects camelCase keys and plain JSON numbers, unlike the API.
type WebhookPayload struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customerName"`
	City         string        `json:"city"`
	Phone        string        `json:"phone"`
	Items        []WebhookItem `json:"items"`
	Total        json.Number   `json:"total"`
	Date         string        `json:"date"`
	Status       OrderStatus   `json:"status"`
}

func NewWebhookPayload(o Order) WebhookPayload {
	items := make([]WebhookItem, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, WebhookItem{
			ID:             line.ID,
			Name:           line.Name,
			Description:    line.Description,
			Price:          json.Number(line.Price.String()),
			Category:       line.Category,
			Image:          line.Image,
			Specifications: append([]string(nil), line.Specifications...),
			Quantity:       line.Quantity,
		})
	}

	return WebhookPayload{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		City:         o.City,
		Phone:        o.Phone,
		Items:        items,
		Total:        json.Number(o.Total.String()),
		Date:         o.Date,
		Status:       o.Status,
	}
}
