package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/service"
	"github.com/kissaten/cafepos/internal/transport"
	"github.com/kissaten/cafepos/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	var (
		items []models.Product
		err   error
	)
	if cat := c.QueryParam("category"); cat != "" {
		items, err = h.Svc.ListProductsByCategory(ctx, cat)
	} else {
		items, err = h.Svc.ListProducts(ctx)
	}
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("list_categories_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_not_found", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var p models.Product
	if err := c.Bind(&p); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.CreateProduct(ctx, &p); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("product created", "id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.patch")

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_product_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("patch_product_not_found", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("patch_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_product_not_found", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("delete_product_conflict", "status", 409, "id", id)
			return c.JSON(http.StatusConflict, "product is referenced by orders")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.stock")

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.SetStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_stock_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStock(ctx, id, req.StockQuantity); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_stock_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_stock_not_found", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("update_stock_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("stock updated", "id", id, "stock", req.StockQuantity)
	return c.NoContent(http.StatusNoContent)
}
