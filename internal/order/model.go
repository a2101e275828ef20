package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vasiliy-maslov/storefront/internal/cart"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (os OrderStatus) String() string {
	return string(os)
}

// Customer is the contact data entered on the checkout form.
type Customer struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

// Order is created once per checkout and never changed afterwards.
type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	City         string          `json:"city"`
	Phone        string          `json:"phone"`
	Items        []cart.Line     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Date         string          `json:"date"` // дата в формате магазина
	CreatedAt    time.Time       `json:"created_at"`
	Status       OrderStatus     `json:"status"`
}

// ItemCount is the number of units in the order.
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func (o Order) clone() Order {
	c := o
	c.Items = make([]cart.Line, 0, len(o.Items))
	for _, item := range o.Items {
		c.Items = append(c.Items, cart.Line{Product: item.Product.Clone(), Quantity: item.Quantity})
	}
	return c
}
