// Package storefront wires the in-memory stores of one shop session
// together. Views receive a *Storefront and never touch package globals.
package storefront

import (
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/settings"
)

type Storefront struct {
	Catalog  *catalog.Store
	Cart     *cart.Cart
	History  *order.History
	Settings *settings.Store
	Orders   order.Service
}

// New builds a fresh session from seed data. notifier may be nil, in which
// case placed orders are never announced.
func New(seed []catalog.Product, initial settings.Settings, notifier order.Notifier, opts ...order.Option) *Storefront {
	sf := &Storefront{
		Catalog:  catalog.NewStore(seed),
		Cart:     cart.New(),
		History:  order.NewHistory(),
		Settings: settings.NewStore(initial),
	}

	sf.Orders = order.NewService(sf.Cart, sf.History, sf.Settings, notifier, opts...)

	return sf
}

// AddToCart looks the product up in the catalog and adds one unit of it.
func (sf *Storefront) AddToCart(productID string) (catalog.Product, error) {
	p, err := sf.Catalog.FindByID(productID)
	if err != nil {
		return catalog.Product{}, err
	}
	sf.Cart.Add(p)
	return p, nil
}
