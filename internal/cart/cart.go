package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kissaten/cafepos/internal/models"
)

var ErrValidation = errors.New("validation")

// DefaultTaxRate is the consumption tax applied to the subtotal.
var DefaultTaxRate = decimal.NewFromFloat(0.10)

// Item is a cart line: a snapshot of the product at the moment it was
// added. Later price changes in the catalog do not affect it.
type Item struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (i Item) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Observer is notified after every cart mutation. Subscribers are
// registered explicitly; there is no ambient callback state.
type Observer interface {
	CartChanged(c *Cart)
}

// Cart is the transient per-session aggregate. It is confined to one
// checkout session and is never persisted.
type Cart struct {
	taxRate   decimal.Decimal
	items     []*Item
	observers []Observer
}

func New() *Cart {
	return &Cart{taxRate: DefaultTaxRate}
}

func NewWithTaxRate(rate decimal.Decimal) *Cart {
	return &Cart{taxRate: rate}
}

func (c *Cart) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Cart) notify() {
	for _, o := range c.observers {
		o.CartChanged(c)
	}
}

// AddItem appends a line for the product, snapshotting its current
// price. Adding a product already in the cart increments its quantity.
func (c *Cart) AddItem(p *models.Product, quantity int) error {
	if p == nil {
		return fmt.Errorf("%w: product is required", ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	for _, it := range c.items {
		if it.ProductID == p.ID {
			it.Quantity += quantity
			c.notify()
			return nil
		}
	}

	c.items = append(c.items, &Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
	})
	c.notify()
	return nil
}

// RemoveItem deletes the line for productID. Unknown ids are a no-op.
func (c *Cart) RemoveItem(productID int) {
	for i, it := range c.items {
		if it.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.notify()
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing line exactly.
// Zero removes the line; unknown ids are a no-op.
func (c *Cart) UpdateQuantity(productID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	for i, it := range c.items {
		if it.ProductID == productID {
			if quantity == 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			} else {
				it.Quantity = quantity
			}
			c.notify()
			return nil
		}
	}
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
	c.notify()
}

// Items returns the lines in insertion order. The slice is a copy; the
// line snapshots are shared.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, *it)
	}
	return out
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.TotalPrice())
	}
	return sum
}

// Tax rounds to whole currency units with banker's rounding.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(c.taxRate).RoundBank(0)
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax())
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
