package handler

import (
	"net/http"

	"ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/cart")

	g.POST("", h.addToCart)
	g.GET("/:userId", h.getCart)
	g.PUT("/items/:id", h.updateQuantity)
	g.DELETE("/items/:id", h.removeItem)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	item, err := h.uc.AddToCart(c.Request().Context(), usecase.AddCartInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Message: "product added to cart", Data: item})
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	lines, err := h.uc.GetCartDetails(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Data: lines})
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	itemID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	item, err := h.uc.UpdateQuantity(c.Request().Context(), itemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Message: "cart quantity updated", Data: item})
}

func (h *CartHandler) removeItem(c echo.Context) error {
	itemID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	item, found, err := h.uc.RemoveFromCart(c.Request().Context(), itemID)
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return c.JSON(http.StatusOK, Response{Message: "no cart item found"})
	}
	return c.JSON(http.StatusOK, Response{Message: "cart item removed", Data: item})
}
