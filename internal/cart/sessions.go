package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sessions maps terminal session ids to their carts. Each cart itself is
// single-session state; only the registry is shared between requests.
type Sessions struct {
	mu      sync.Mutex
	taxRate decimal.Decimal
	carts   map[string]*Cart
}

func NewSessions(taxRate decimal.Decimal) *Sessions {
	return &Sessions{
		taxRate: taxRate,
		carts:   make(map[string]*Cart),
	}
}

// Get returns the cart for id, creating an empty one on first use.
func (s *Sessions) Get(id string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[id]
	if !ok {
		c = NewWithTaxRate(s.taxRate)
		s.carts[id] = c
	}
	return c
}

// NewSession mints a fresh session id with an empty cart.
func (s *Sessions) NewSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[id] = NewWithTaxRate(s.taxRate)
	return id
}

// Drop destroys the session after a successful checkout.
func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}
