package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/events"
	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/repo"
	"github.com/kissaten/cafepos/pkg/logging"
)

// LedgerService reads and annotates the persisted order ledger. Orders
// are immutable after checkout except for their status.
type LedgerService struct {
	Repo   *repo.GormRepo
	Events *events.Producer

	Now func() time.Time
}

func (s *LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListOrders returns orders (items and products loaded) inside the
// inclusive date range, newest first. Nil bounds are open.
func (s *LedgerService) ListOrders(ctx context.Context, from, to *time.Time) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, from, to)
}

func (s *LedgerService) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return o, err
}

func (s *LedgerService) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	o, err := s.Repo.GetOrderByNumber(ctx, number)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %s: %w", number, ErrNotFound)
	}
	return o, err
}

// SetStatus overwrites the order status. Any known status may replace any
// other; the counter corrects mistakes by setting the right one.
func (s *LedgerService) SetStatus(ctx context.Context, id int, status models.OrderStatus) error {
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	err := s.Repo.SetOrderStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	o, err := s.Repo.GetOrder(ctx, id)
	if err == nil {
		if pubErr := s.Events.Publish(ctx, o.OrderNumber, events.OrderStatusChanged{
			Type:        "order_status_changed",
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Status:      string(status),
		}); pubErr != nil {
			logging.FromContext(ctx).Warn("status event publish failed", "order_id", id, "error", pubErr)
		}
	}
	return nil
}

// TodaysSales sums the totals of today's completed orders.
func (s *LedgerService) TodaysSales(ctx context.Context) (decimal.Decimal, error) {
	start, end := dayBounds(s.now())
	return s.Repo.SumOrderTotals(ctx, start, end, models.OrderStatusCompleted)
}

// TodaysOrderCount counts every order placed today, whatever its status.
func (s *LedgerService) TodaysOrderCount(ctx context.Context) (int64, error) {
	start, end := dayBounds(s.now())
	return s.Repo.CountOrdersBetween(ctx, start, end)
}
