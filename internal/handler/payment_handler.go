package handler

import (
	"net/http"
	"strings"

	"ecommerce/internal/domain/model"
	"ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

// DI
func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type ProcessPaymentRequest struct {
	OrderID   int64  `json:"order_id"`
	Succeeded *bool  `json:"succeeded"`
	Method    string `json:"method"`
}

type PaymentStatusResponse struct {
	PaymentID int64               `json:"payment_id"`
	Status    model.PaymentStatus `json:"status"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/payments", h.process)
	e.GET("/api/payments/:id/status", h.status)
}

func (h *PaymentHandler) process(c echo.Context) error {
	var req ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	// 成功/失敗は必須
	if req.Succeeded == nil {
		return badRequest(c, "succeeded is required")
	}

	out, err := h.uc.ProcessPayment(c.Request().Context(), usecase.ProcessPaymentInput{
		OrderID:   req.OrderID,
		Succeeded: *req.Succeeded,
		Method:    model.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method))),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Message: out.Message, Data: out})
}

func (h *PaymentHandler) status(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	st, err := h.uc.GetPaymentStatus(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Data: PaymentStatusResponse{PaymentID: id, Status: st}})
}
