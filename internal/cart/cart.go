package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// Line is a product snapshot plus the quantity ordered.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price x quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) clone() Line {
	return Line{Product: l.Product.Clone(), Quantity: l.Quantity}
}

// Cart maps product id to a line. Lines keep the order in which products
// were first added.
type Cart struct {
	mu    sync.RWMutex
	lines map[string]*Line
	order []string
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add puts one more unit of the product into the cart. The first add stores
// a snapshot of the product; later catalog edits do not change it.
func (c *Cart) Add(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return
	}

	c.lines[p.ID] = &Line{Product: p.Clone(), Quantity: 1}
	c.order = append(c.order, p.ID)
}

// Remove drops the line for productID. Unknown ids are ignored.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(productID)
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(productID)
		return
	}

	if line, ok := c.lines[productID]; ok {
		line.Quantity = quantity
	}
}

// Total is the sum of price x quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.lines)
}

// Lines returns deep copies of the lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot()
}

// Drain returns the current lines and empties the cart in one step.
func (c *Cart) Drain() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := c.snapshot()
	c.reset()
	return lines
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
}

func (c *Cart) snapshot() []Line {
	result := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.lines[id].clone())
	}
	return result
}

func (c *Cart) remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)

	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) reset() {
	c.lines = make(map[string]*Line)
	c.order = nil
}

// Sum returns the total of the given lines, using the same rule as Total.
func Sum(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
