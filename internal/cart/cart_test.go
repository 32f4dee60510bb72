package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kissaten/cafepos/internal/models"
)

func product(id int, price int64) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     "product",
		Category: "Drinks",
		Price:    decimal.NewFromInt(price),
		IsActive: true,
	}
}

func TestCart_AddItem_Validation(t *testing.T) {
	t.Parallel()

	c := New()

	err := c.AddItem(nil, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	tests := []struct {
		name     string
		quantity int
	}{
		{name: "zero quantity", quantity: 0},
		{name: "negative quantity", quantity: -2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := c.AddItem(product(1, 350), tt.quantity)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.True(t, c.IsEmpty())
}

func TestCart_AddItem_MergesSameProduct(t *testing.T) {
	t.Parallel()

	c := New()
	p := product(1, 350)

	require.NoError(t, c.AddItem(p, 2))
	require.NoError(t, c.AddItem(p, 3))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_AddItem_SnapshotsPrice(t *testing.T) {
	t.Parallel()

	c := New()
	p := product(1, 350)
	require.NoError(t, c.AddItem(p, 1))

	// a later catalog price change must not leak into the cart
	p.Price = decimal.NewFromInt(999)

	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(350)),
		"unit price %s", items[0].UnitPrice)
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(350)))
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(product(1, 350), 2))

	err := c.UpdateQuantity(1, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, c.UpdateQuantity(1, 7))
	assert.Equal(t, 7, c.ItemCount())

	// zero removes the line
	require.NoError(t, c.UpdateQuantity(1, 0))
	assert.True(t, c.IsEmpty())

	// unknown product id is a no-op
	require.NoError(t, c.UpdateQuantity(42, 3))
	assert.True(t, c.IsEmpty())
}

func TestCart_RemoveItem(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(product(1, 350), 1))
	require.NoError(t, c.AddItem(product(2, 420), 1))

	c.RemoveItem(1)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ProductID)

	// absent id is a no-op
	c.RemoveItem(42)
	assert.Len(t, c.Items(), 1)
}

func TestCart_Totals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    int64
		quantity int
		subtotal int64
		tax      int64
		total    int64
	}{
		{name: "round number", price: 500, quantity: 2, subtotal: 1000, tax: 100, total: 1100},
		{name: "half rounds to even down", price: 335, quantity: 3, subtotal: 1005, tax: 100, total: 1105},
		{name: "half rounds to even up", price: 203, quantity: 5, subtotal: 1015, tax: 102, total: 1117},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			require.NoError(t, c.AddItem(product(1, tt.price), tt.quantity))

			assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(tt.subtotal)), "subtotal %s", c.Subtotal())
			assert.True(t, c.Tax().Equal(decimal.NewFromInt(tt.tax)), "tax %s", c.Tax())
			assert.True(t, c.Total().Equal(decimal.NewFromInt(tt.total)), "total %s", c.Total())
		})
	}
}

func TestCart_ItemCountMatchesQuantities(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(product(1, 350), 2))
	require.NoError(t, c.AddItem(product(2, 420), 4))
	require.NoError(t, c.UpdateQuantity(1, 3))
	c.RemoveItem(2)
	require.NoError(t, c.AddItem(product(3, 250), 1))

	want := 0
	for _, it := range c.Items() {
		want += it.Quantity
	}
	assert.Equal(t, want, c.ItemCount())
	assert.Equal(t, 4, c.ItemCount())
}

func TestCart_Clear(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(product(1, 350), 2))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Subtotal().IsZero())
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) CartChanged(*Cart) { o.calls++ }

func TestCart_ObserverNotified(t *testing.T) {
	t.Parallel()

	c := New()
	obs := &countingObserver{}
	c.Subscribe(obs)

	require.NoError(t, c.AddItem(product(1, 350), 1))
	require.NoError(t, c.UpdateQuantity(1, 2))
	c.RemoveItem(1)
	c.Clear()

	assert.Equal(t, 4, obs.calls)
}

func TestSessions(t *testing.T) {
	t.Parallel()

	s := NewSessions(decimal.NewFromFloat(0.10))

	id := s.NewSession()
	require.NotEmpty(t, id)

	c := s.Get(id)
	require.NoError(t, c.AddItem(product(1, 350), 1))

	// same id returns the same cart
	assert.Equal(t, 1, s.Get(id).ItemCount())

	// unknown id creates an empty cart on first use
	other := s.Get("other-terminal")
	assert.True(t, other.IsEmpty())

	s.Drop(id)
	assert.True(t, s.Get(id).IsEmpty())
}
