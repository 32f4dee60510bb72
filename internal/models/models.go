package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentDigital    PaymentMethod = "digital"
	PaymentOther      PaymentMethod = "other"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentDigital, PaymentOther:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

type Product struct {
	ID            int             `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name          string          `gorm:"size:200;not null"            json:"name"`
	Category      string          `gorm:"size:100;not null;index"      json:"category"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"  json:"price"`
	Description   string          `gorm:"size:500"                     json:"description,omitempty"`
	ImageURL      string          `gorm:"size:500"                     json:"image_url,omitempty"`
	IsActive      bool            `gorm:"not null;default:true;index"  json:"is_active"`
	StockQuantity int             `gorm:"not null;default:0"           json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Order struct {
	ID            int             `gorm:"primaryKey;autoIncrement"      json:"id"`
	OrderNumber   string          `gorm:"size:50;not null;uniqueIndex"  json:"order_number"`
	OrderDate     time.Time       `gorm:"not null;index"                json:"order_date"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"   json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,2);not null"   json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"   json:"total"`
	Status        OrderStatus     `gorm:"size:20;not null"              json:"status"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null"              json:"payment_method"`
	CustomerName  string          `gorm:"size:200"                      json:"customer_name,omitempty"`
	Notes         string          `gorm:"size:1000"                     json:"notes,omitempty"`
	Items         []OrderItem     `gorm:"constraint:OnDelete:CASCADE"   json:"items"`
}

type OrderItem struct {
	ID        int             `gorm:"primaryKey;autoIncrement"      json:"id"`
	OrderID   int             `gorm:"not null;index"                json:"order_id"`
	ProductID int             `gorm:"not null"                      json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT"  json:"product,omitempty"`
	Quantity  int             `gorm:"not null;check:quantity>0"     json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"   json:"unit_price"`
}

// TotalPrice is the line total at the snapshot price, never the live one.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
