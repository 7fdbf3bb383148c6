package handler

import (
	"net/http"

	"ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// idがあれば更新
type CategoryRequest struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, adminMW ...echo.MiddlewareFunc) {
	e.GET("/api/categories", h.list)
	e.GET("/api/categories/:id", h.detail)
	e.GET("/api/categories/:id/products", h.products)

	admin := e.Group("/api/categories", adminMW...)
	admin.POST("", h.save)
	admin.DELETE("/:id", h.delete)
}

func (h *CategoryHandler) list(c echo.Context) error {
	cs, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Data: cs})
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	cat, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Data: cat})
}

func (h *CategoryHandler) products(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	ps, err := h.uc.ListCategoryProducts(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Data: ps})
}

func (h *CategoryHandler) save(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	cat, err := h.uc.AddCategory(c.Request().Context(), usecase.CategoryInput{ID: req.ID, Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	if req.ID != nil {
		return c.JSON(http.StatusOK, Response{Message: "category updated", Data: cat})
	}
	return c.JSON(http.StatusCreated, Response{Message: "category added", Data: cat})
}

func (h *CategoryHandler) delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	cat, found, err := h.uc.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return c.JSON(http.StatusOK, Response{Message: "no category found"})
	}
	return c.JSON(http.StatusOK, Response{Message: "category deleted", Data: cat})
}
