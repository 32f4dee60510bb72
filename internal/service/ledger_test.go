package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/repo"
)

func seedOrder(t *testing.T, r *repo.GormRepo, number string, date time.Time, total int64, status models.OrderStatus) *models.Order {
	t.Helper()

	o := &models.Order{
		OrderNumber:   number,
		OrderDate:     date,
		Subtotal:      decimal.NewFromInt(total),
		Tax:           decimal.Zero,
		Total:         decimal.NewFromInt(total),
		Status:        status,
		PaymentMethod: models.PaymentCash,
	}
	require.NoError(t, r.DB.Create(o).Error)
	return o
}

func TestLedger_TodaysSales(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &LedgerService{Repo: r, Now: fixedClock(testDay)}

	yesterday := testDay.AddDate(0, 0, -1)
	seedOrder(t, r, "POS202404300001", yesterday, 2200, models.OrderStatusCompleted)
	seedOrder(t, r, "POS202405010001", testDay, 1100, models.OrderStatusCompleted)
	seedOrder(t, r, "POS202405010002", testDay, 550, models.OrderStatusPending)
	seedOrder(t, r, "POS202405010003", testDay, 330, models.OrderStatusCancelled)

	sales, err := svc.TodaysSales(context.Background())
	require.NoError(t, err)
	assert.True(t, sales.Equal(decimal.NewFromInt(1100)), "sales %s", sales)

	count, err := svc.TodaysOrderCount(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, count, "all of today's orders count, any status")
}

func TestLedger_ListOrders(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &LedgerService{Repo: r, Now: fixedClock(testDay)}

	old := seedOrder(t, r, "POS202404290001", testDay.AddDate(0, 0, -2), 100, models.OrderStatusCompleted)
	mid := seedOrder(t, r, "POS202404300001", testDay.AddDate(0, 0, -1), 200, models.OrderStatusCompleted)
	newest := seedOrder(t, r, "POS202405010001", testDay, 300, models.OrderStatusPending)

	all, err := svc.ListOrders(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID, "newest first")
	assert.Equal(t, mid.ID, all[1].ID)
	assert.Equal(t, old.ID, all[2].ID)

	from := testDay.AddDate(0, 0, -1)
	ranged, err := svc.ListOrders(context.Background(), &from, &testDay)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, newest.ID, ranged[0].ID)
	assert.Equal(t, mid.ID, ranged[1].ID)
}

func TestLedger_GetOrder_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &LedgerService{Repo: r, Now: fixedClock(testDay)}

	_, err := svc.GetOrder(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOrderByNumber(context.Background(), "POS209901010001")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedger_SetStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &LedgerService{Repo: r, Now: fixedClock(testDay)}
	o := seedOrder(t, r, "POS202405010001", testDay, 500, models.OrderStatusPending)

	require.NoError(t, svc.SetStatus(context.Background(), o.ID, models.OrderStatusCompleted))

	got, err := svc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)

	// any status may replace any other, terminal or not
	require.NoError(t, svc.SetStatus(context.Background(), o.ID, models.OrderStatusPending))

	err = svc.SetStatus(context.Background(), o.ID, "shipped")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.SetStatus(context.Background(), 4242, models.OrderStatusCompleted)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
