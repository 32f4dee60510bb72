package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/service"
	"github.com/kissaten/cafepos/internal/transport"
	"github.com/kissaten/cafepos/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.LedgerService
}

func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	from, err := parseDateParam(c, "from")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid from date, want YYYY-MM-DD")
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid to date, want YYYY-MM-DD")
	}

	orders, err := h.Svc.ListOrders(ctx, from, to)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	o, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_not_found", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) GetOrderByNumber(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_by_number")

	number := c.Param("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, "order number required")
	}

	o, err := h.Svc.GetOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_not_found", "status", 404, "number", number)
			return c.JSON(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.status")

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SetStatus(ctx, id, models.OrderStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_status_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_status_not_found", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, "order not found")
		}
		l.Error("update_status_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("order status updated", "id", id, "new_status", req.Status)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) TodayReport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.today")

	sales, err := h.Svc.TodaysSales(ctx)
	if err != nil {
		l.Error("today_report_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	count, err := h.Svc.TodaysOrderCount(ctx)
	if err != nil {
		l.Error("today_report_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.TodayReport{Sales: sales, OrderCount: count})
}
