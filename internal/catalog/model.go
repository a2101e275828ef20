package catalog

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryHome        Category = "home"
	CategoryCars        Category = "cars"
)

var Categories = []Category{CategoryElectronics, CategoryHome, CategoryCars}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known catalog categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryHome, CategoryCars:
		return true
	default:
		return false
	}
}

// Product представляет товар каталога.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"` // в валюте магазина (MAD)
	Category       Category        `json:"category"`
	Image          string          `json:"image"`
	Specifications []string        `json:"specifications"`
}

// Clone returns a deep copy, so callers can keep a snapshot that later
// catalog edits do not touch.
func (p Product) Clone() Product {
	c := p
	if p.Specifications != nil {
		c.Specifications = make([]string, len(p.Specifications))
		copy(c.Specifications, p.Specifications)
	}
	return c
}
