package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

// CountOrdersBetween counts orders with from <= order_date < to,
// regardless of status.
func (r *GormRepo) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_date >= ? AND order_date < ?", from, to).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) ListOrders(ctx context.Context, from, to *time.Time) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items").
		Preload("Items.Product")

	if from != nil {
		q = q.Where("order_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("order_date <= ?", *to)
	}

	var orders []models.Order
	if err := q.Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("order_number = ?", number).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SetOrderStatus overwrites the status unconditionally; the source never
// enforced a transition graph.
func (r *GormRepo) SetOrderStatus(ctx context.Context, id int, status models.OrderStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumOrderTotals adds up totals of orders with the given status inside
// [from, to). Summed in Go so the decimal column behaves the same on
// postgres and the sqlite test driver.
func (r *GormRepo) SumOrderTotals(ctx context.Context, from, to time.Time, status models.OrderStatus) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_date >= ? AND order_date < ? AND status = ?", from, to, status).
		Pluck("total", &totals).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum, nil
}
