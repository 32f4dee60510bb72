package transport

import (
	"github.com/shopspring/decimal"

	"github.com/kissaten/cafepos/internal/cart"
)

type PatchProductRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	Description   *string          `json:"description"`
	ImageURL      *string          `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
	StockQuantity *int             `json:"stock_quantity"`
}

type SetStockRequest struct {
	StockQuantity int `json:"stock_quantity"`
}

// Quantity is a pointer so an omitted field (defaults to 1) can be told
// apart from an explicit, invalid zero.
type AddCartItemRequest struct {
	ProductID int  `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartView struct {
	Items     []cart.Item     `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func NewCartView(c *cart.Cart) CartView {
	return CartView{
		Items:     c.Items(),
		Subtotal:  c.Subtotal(),
		Tax:       c.Tax(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
	ReceiptEmail  string `json:"receipt_email"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type TodayReport struct {
	Sales      decimal.Decimal `json:"sales"`
	OrderCount int64           `json:"order_count"`
}
