package catalog

import (
	"errors"
	"sync"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrDuplicateProductID = errors.New("product with this id already exists")
)

// Store keeps the ordered product collection in memory.
type Store struct {
	mu       sync.RWMutex
	products []Product
}

// NewStore creates a store pre-filled with the given products (in order).
func NewStore(seed []Product) *Store {
	s := &Store{products: make([]Product, 0, len(seed))}
	for _, p := range seed {
		s.products = append(s.products, p.Clone())
	}
	return s
}

// List returns the products in catalog order.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.products)
}

// Add appends a product. Id uniqueness is left to the caller.
func (s *Store) Add(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, p.Clone())
}

// AddUnique appends p unless a product with the same id already exists.
func (s *Store) AddUnique(p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.ID == p.ID {
			return ErrDuplicateProductID
		}
	}
	s.products = append(s.products, p.Clone())
	return nil
}

// Remove deletes the product with the given id. Missing ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// FindByID returns the product or ErrProductNotFound.
func (s *Store) FindByID(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Exists reports whether a product with the id is in the catalog.
func (s *Store) Exists(id string) bool {
	_, err := s.FindByID(id)
	return err == nil
}

// FilterByCategory returns products of the category, keeping catalog order.
// An empty category returns the whole catalog.
func (s *Store) FilterByCategory(category Category) []Product {
	if category == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			result = append(result, p.Clone())
		}
	}
	return result
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

func cloneAll(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		result = append(result, p.Clone())
	}
	return result
}
