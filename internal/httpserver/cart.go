package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kissaten/cafepos/internal/cart"
	"github.com/kissaten/cafepos/internal/service"
	"github.com/kissaten/cafepos/internal/transport"
	"github.com/kissaten/cafepos/pkg/logging"
)

// SessionHeader carries the terminal's cart session id. A request
// without one gets a fresh session; the id is echoed back either way.
const SessionHeader = "X-Session-ID"

type CartHTTP struct {
	Sessions *cart.Sessions
	Catalog  *service.CatalogService
}

func (h *CartHTTP) session(c echo.Context) (string, *cart.Cart) {
	id := c.Request().Header.Get(SessionHeader)
	if id == "" {
		id = h.Sessions.NewSession()
	}
	c.Response().Header().Set(SessionHeader, id)
	return id, h.Sessions.Get(id)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	_, crt := h.session(c)
	return c.JSON(http.StatusOK, transport.NewCartView(crt))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	p, err := h.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_not_found", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	_, crt := h.session(c)
	if err := crt.AddItem(p, quantity); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	l.Info("item added to cart", "product_id", p.ID, "quantity", quantity)
	return c.JSON(http.StatusOK, transport.NewCartView(crt))
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	productID, err := pathID(c, "productID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid product id")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	_, crt := h.session(c)
	if err := crt.UpdateQuantity(productID, req.Quantity); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, transport.NewCartView(crt))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	productID, err := pathID(c, "productID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid product id")
	}

	_, crt := h.session(c)
	crt.RemoveItem(productID)
	return c.JSON(http.StatusOK, transport.NewCartView(crt))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	_, crt := h.session(c)
	crt.Clear()
	return c.JSON(http.StatusOK, transport.NewCartView(crt))
}
