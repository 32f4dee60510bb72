package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/cart"
	"github.com/kissaten/cafepos/internal/events"
	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/repo"
	"github.com/kissaten/cafepos/pkg/logging"
)

// orderNumberAttempts bounds the retry when two checkouts race for the
// same daily sequence number. The second attempt recounts, so it only
// collides again if the competing order still isn't visible.
const orderNumberAttempts = 2

type CheckoutOptions struct {
	CustomerName  string
	PaymentMethod models.PaymentMethod
	Notes         string
}

// CheckoutService turns a cart into a persisted order: one transaction
// covering order numbering, price-snapshot order lines, stock decrement
// and the order insert. A failed checkout leaves no trace.
type CheckoutService struct {
	Repo   *repo.GormRepo
	Events *events.Producer

	// StrictStock rejects lines that exceed the stock on hand with
	// ErrStockConflict. The default mirrors the counter's "never block a
	// sale" behavior: the line is recorded, the decrement is skipped and
	// a warning is logged.
	StrictStock bool

	// Now is the injected clock; order numbering and the daily reset
	// follow it.
	Now func() time.Time
}

func (s *CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CheckoutService) CreateOrder(ctx context.Context, c *cart.Cart, opts CheckoutOptions) (*models.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if opts.PaymentMethod == "" {
		opts.PaymentMethod = models.PaymentCash
	}
	if _, err := models.ParsePaymentMethod(string(opts.PaymentMethod)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var order *models.Order
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order, err = s.createOrderOnce(ctx, c, opts)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%s: %w", order.OrderNumber, ErrOrderNumberConflict)
	}
	if err != nil {
		return nil, err
	}

	if pubErr := s.Events.Publish(ctx, order.OrderNumber, events.OrderCreated{
		Type:        "order_created",
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total.StringFixed(2),
		ItemCount:   len(order.Items),
	}); pubErr != nil {
		logging.FromContext(ctx).Warn("order event publish failed", "order_number", order.OrderNumber, "error", pubErr)
	}

	return order, nil
}

func (s *CheckoutService) createOrderOnce(ctx context.Context, c *cart.Cart, opts CheckoutOptions) (*models.Order, error) {
	now := s.now()
	dayStart, dayEnd := dayBounds(now)

	order := &models.Order{
		OrderDate:     now,
		Subtotal:      c.Subtotal(),
		Tax:           c.Tax(),
		Total:         c.Total(),
		Status:        models.OrderStatusPending,
		PaymentMethod: opts.PaymentMethod,
		CustomerName:  opts.CustomerName,
		Notes:         opts.Notes,
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		count, err := tx.CountOrdersBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return err
		}
		order.OrderNumber = fmt.Sprintf("POS%s%04d", now.Format("20060102"), count+1)

		for _, item := range c.Items() {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})

			decremented, err := tx.TryDecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !decremented {
				if s.StrictStock {
					return fmt.Errorf("product %d, quantity %d: %w", item.ProductID, item.Quantity, ErrStockConflict)
				}
				logging.FromContext(ctx).Warn("stock shortfall tolerated",
					"product_id", item.ProductID,
					"quantity", item.Quantity,
					"order_number", order.OrderNumber)
			}
		}

		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		// keep the number for the conflict message, drop the rest
		return &models.Order{OrderNumber: order.OrderNumber}, err
	}
	return order, nil
}

// dayBounds is the local calendar day containing t: [midnight, midnight+24h).
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
