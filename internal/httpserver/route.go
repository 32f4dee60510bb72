package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ProductHandler  *ProductHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	OrderHandler    *OrderHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/categories", d.ProductHandler.ListCategories)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PATCH("/:id", d.ProductHandler.PatchProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)
	products.PUT("/:id/stock", d.ProductHandler.UpdateStock)

	crt := e.Group("/cart")
	crt.GET("", d.CartHandler.GetCart)
	crt.POST("/items", d.CartHandler.AddItem)
	crt.PATCH("/items/:productID", d.CartHandler.UpdateItem)
	crt.DELETE("/items/:productID", d.CartHandler.RemoveItem)
	crt.DELETE("", d.CartHandler.ClearCart)

	e.POST("/checkout", d.CheckoutHandler.Checkout)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.GET("/number/:number", d.OrderHandler.GetOrderByNumber)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus)

	e.GET("/reports/today", d.OrderHandler.TodayReport)
}
