package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront/internal/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

const (
	DefaultDateLayout = "2/1/2006"
	maxIDAttempts     = 10
)

// CartSource hands over the cart content and empties it in one step.
type CartSource interface {
	Drain() []cart.Line
	Len() int
}

// WebhookSource tells where placed orders should be announced.
type WebhookSource interface {
	WebhookURL() string
}

// Notifier delivers a payload in the background without reporting failures.
type Notifier interface {
	Dispatch(url string, payload any) bool
}

type Service interface {
	PlaceOrder(ctx context.Context, customer Customer) (*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) []Order
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *service) { s.newID = gen }
}

// WithDateLayout sets the time layout used for Order.Date.
func WithDateLayout(layout string) Option {
	return func(s *service) { s.dateLayout = layout }
}

type service struct {
	cart     CartSource
	history  *History
	webhooks WebhookSource
	notifier Notifier

	now        func() time.Time
	newID      func() (string, error)
	dateLayout string
}

func NewService(cartSource CartSource, history *History, webhooks WebhookSource, notifier Notifier, opts ...Option) Service {
	s := &service{
		cart:       cartSource,
		history:    history,
		webhooks:   webhooks,
		notifier:   notifier,
		now:        time.Now,
		newID:      NewID,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder turns the current cart into a pending order, stores it at the
// head of the history and empties the cart. Customer fields are expected to
// be validated by the caller.
func (s *service) PlaceOrder(ctx context.Context, customer Customer) (*Order, error) {
	if s.cart.Len() == 0 {
		log.Warn().Msg("service: attempt to place order with empty cart")
		return nil, ErrEmptyCart
	}

	id, err := s.uniqueID()
	if err != nil {
		log.Error().Err(err).Msg("service: failed to generate order id")
		return nil, fmt.Errorf("service: failed to place order: %w", err)
	}

	items := s.cart.Drain()
	if len(items) == 0 {
		// emptied by a concurrent checkout
		return nil, ErrEmptyCart
	}

	createdAt := s.now()
	o := Order{
		ID:           id,
		CustomerName: customer.Name,
		City:         customer.City,
		Phone:        customer.Phone,
		Items:        items,
		Total:        cart.Sum(items),
		Date:         createdAt.Format(s.dateLayout),
		CreatedAt:    createdAt,
		Status:       StatusPending,
	}

	s.history.prepend(o)

	log.Info().Str("order_id", o.ID).Str("total", o.Total.String()).Int("items", o.ItemCount()).Msg("service: order placed")

	s.announce(o)

	result := o.clone()
	return &result, nil
}

func (s *service) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	o, err := s.history.FindByID(id)
	if err != nil {
		log.Warn().Err(err).Str("order_id", id).Msg("service: order not found by id")
		return nil, err
	}
	return &o, nil
}

func (s *service) ListOrders(ctx context.Context) []Order {
	return s.history.List()
}

func (s *service) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if !s.history.Exists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free order id after %d attempts", maxIDAttempts)
}

func (s *service) announce(o Order) {
	if s.webhooks == nil || s.notifier == nil {
		return
	}

	url := s.webhooks.WebhookURL()
	if url == "" {
		return
	}

	if !s.notifier.Dispatch(url, NewWebhookPayload(o)) {
		log.Warn().Str("order_id", o.ID).Msg("service: order sync skipped")
	}
}
