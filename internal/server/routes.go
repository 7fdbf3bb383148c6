package server

import (
	"net/http"

	"ecommerce/internal/config"
	"ecommerce/internal/handler"
	"ecommerce/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Users      *handler.UserHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Cart       *handler.CartHandler
	Orders     *handler.OrderHandler
	Payments   *handler.PaymentHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// カタログ更新はADMINだけ
	admin := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg.JWTSecret),
		middleware.AdminRoleGuard(),
	}

	h.Users.RegisterRoutes(e)
	h.Products.RegisterRoutes(e, admin...)
	h.Categories.RegisterRoutes(e, admin...)
	h.Cart.RegisterRoutes(e)
	h.Orders.RegisterRoutes(e)
	h.Payments.RegisterRoutes(e)
}
