package order

import (
	"errors"
	"sync"
)

var ErrOrderNotFound = errors.New("order not found")

// History keeps placed orders, most recent first.
type History struct {
	mu     sync.RWMutex
	orders []Order
}

func NewHistory() *History {
	return &History{}
}

func (h *History) prepend(o Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.orders = append([]Order{o}, h.orders...)
}

// List returns the orders, newest first.
func (h *History) List() []Order {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Order, 0, len(h.orders))
	for _, o := range h.orders {
		result = append(result, o.clone())
	}
	return result
}

func (h *History) FindByID(id string) (Order, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, o := range h.orders {
		if o.ID == id {
			return o.clone(), nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (h *History) Exists(id string) bool {
	_, err := h.FindByID(id)
	return err == nil
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.orders)
}
