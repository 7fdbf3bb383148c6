package handler

import (
	"net/http"
	"strconv"

	"ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Response struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Kind -> HTTPステータス
func statusOf(kind usecase.Kind) int {
	switch kind {
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindInvalidArgument, usecase.KindEmptyCart:
		return http.StatusBadRequest
	case usecase.KindConflict:
		return http.StatusConflict
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	case usecase.KindSettlementFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	kind := usecase.KindOf(err)
	status := statusOf(kind)
	entry := log.WithFields(log.Fields{
		"kind":       kind,
		"path":       c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).WithError(err)

	//500は中身を返さない
	if status == http.StatusInternalServerError {
		entry.Error("internal error")
		return c.JSON(status, ErrorResponse{Error: "internal error"})
	}
	entry.Warn("request failed")
	return c.JSON(status, ErrorResponse{Error: clientMessage(err)})
}

// 内部エラーを含むときは外側のメッセージだけ返す（DBのエラー文を出さない）
func clientMessage(err error) string {
	if usecase.IsKind(err, usecase.KindInternal) {
		if e, ok := usecase.AsError(err); ok {
			return e.Message
		}
	}
	return err.Error()
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// :name をint64で取る
func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
