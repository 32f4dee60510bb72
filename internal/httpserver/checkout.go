package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kissaten/cafepos/internal/cart"
	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/service"
	"github.com/kissaten/cafepos/internal/transport"
	"github.com/kissaten/cafepos/pkg/logging"
)

type CheckoutHTTP struct {
	Sessions *cart.Sessions
	Svc      *service.CheckoutService
	Receipts *service.ReceiptService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	sessionID := c.Request().Header.Get(SessionHeader)
	if sessionID == "" {
		l.Warn("checkout_error", "status", 400, "reason", "no session")
		return c.JSON(http.StatusBadRequest, "session header required")
	}
	crt := h.Sessions.Get(sessionID)

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, crt, service.CheckoutOptions{
		CustomerName:  req.CustomerName,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("checkout_error", "status", 400, "reason", "empty cart")
			return c.JSON(http.StatusBadRequest, "cart is empty")
		case errors.Is(err, service.ErrValidation):
			l.Warn("checkout_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStockConflict),
			errors.Is(err, service.ErrOrderNumberConflict):
			l.Warn("checkout_conflict", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, err.Error())
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	// the sale is durable; the session cart is done
	crt.Clear()
	h.Sessions.Drop(sessionID)

	if req.ReceiptEmail != "" {
		if err := h.Receipts.SendReceipt(ctx, req.ReceiptEmail, order); err != nil {
			l.Warn("receipt_send_failed", "order_number", order.OrderNumber, "error", err)
		}
	}

	l.Info("checkout_success", "order_number", order.OrderNumber, "total", order.Total.StringFixed(2))
	return c.JSON(http.StatusCreated, order)
}
